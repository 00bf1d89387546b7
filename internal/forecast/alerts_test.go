package forecast

import (
	"testing"

	"github.com/Dan9191/finance-tracker/internal/models"
)

var perRecord = AlertOptions{UseRecordLeadTime: true}

func TestScanAlertsUrgencyAndOrder(t *testing.T) {
	payments := []models.RecurringPayment{
		payment(t, 300, 9, "2025-01-01", "2099-12-31"),
		payment(t, 100, 2, "2025-01-01", "2099-12-31"),
		payment(t, 200, 5, "2025-01-01", "2099-12-31"),
	}
	payments[0].Name, payments[1].Name, payments[2].Name = "car", "phone", "rent"
	payments[2].Notes = "transfer"

	alerts := ScanAlerts(payments, nil, at(t, "2025-03-01"), perRecord)
	want := []struct {
		name    string
		days    int
		urgency models.Urgency
	}{
		{"phone", 1, models.UrgencyUrgent},
		{"rent", 4, models.UrgencyNear},
		{"car", 8, models.UrgencyScheduled},
	}
	if len(alerts) != len(want) {
		t.Fatalf("len = %d, want %d: %+v", len(alerts), len(want), alerts)
	}
	for i, w := range want {
		a := alerts[i]
		if a.Name != w.name || a.DaysRemaining != w.days || a.Urgency != w.urgency || a.SourceKind != models.SourcePayment {
			t.Fatalf("alert %d = {%s %d %s %s}, want {%s %d %s payment}", i, a.Name, a.DaysRemaining, a.Urgency, a.SourceKind, w.name, w.days, w.urgency)
		}
	}
	if alerts[1].Notes != "transfer" {
		t.Fatalf("notes = %q, want transfer", alerts[1].Notes)
	}
}

func TestScanAlertsUrgencyBoundaries(t *testing.T) {
	tests := []struct {
		days int
		want models.Urgency
	}{
		{0, models.UrgencyUrgent},
		{2, models.UrgencyUrgent},
		{3, models.UrgencyNear},
		{5, models.UrgencyNear},
		{6, models.UrgencyScheduled},
	}
	for _, tt := range tests {
		if got := urgencyFor(tt.days); got != tt.want {
			t.Fatalf("urgencyFor(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestScanAlertsDueToday(t *testing.T) {
	alerts := ScanAlerts([]models.RecurringPayment{payment(t, 10, 7, "2025-01-01", "2099-12-31")}, nil, at(t, "2025-04-07"), perRecord)
	if len(alerts) != 1 || alerts[0].DaysRemaining != 0 || alerts[0].DueDate.String() != "2025-04-07" {
		t.Fatalf("got %+v, want one alert due today", alerts)
	}
}

func TestScanAlertsSingleEmission(t *testing.T) {
	p := payment(t, 500, 20, "2025-01-01", "2099-12-31")
	// both Jan 20 and Feb 20 are within 40 days
	alerts := ScanAlerts([]models.RecurringPayment{p}, nil, at(t, "2025-01-18"), AlertOptions{LookaheadDays: 40})
	if len(alerts) != 1 {
		t.Fatalf("len = %d, want 1", len(alerts))
	}
	if alerts[0].DueDate.String() != "2025-01-20" || alerts[0].DaysRemaining != 2 {
		t.Fatalf("alert due %s in %d days, want 2025-01-20 in 2", alerts[0].DueDate, alerts[0].DaysRemaining)
	}
}

func TestScanAlertsCarriesToNextMonth(t *testing.T) {
	p := payment(t, 500, 3, "2025-01-01", "2099-12-31")
	alerts := ScanAlerts([]models.RecurringPayment{p}, nil, at(t, "2025-01-28"), perRecord)
	if len(alerts) != 1 || alerts[0].DueDate.String() != "2025-02-03" || alerts[0].DaysRemaining != 6 {
		t.Fatalf("got %+v, want due 2025-02-03 in 6 days", alerts)
	}
}

func TestScanAlertsDay31InFebruary(t *testing.T) {
	p := payment(t, 500, 31, "2024-01-01", "2099-12-31")
	alerts := ScanAlerts([]models.RecurringPayment{p}, nil, at(t, "2024-02-25"), perRecord)
	if len(alerts) != 1 || alerts[0].DueDate.String() != "2024-02-29" || alerts[0].DaysRemaining != 4 {
		t.Fatalf("got %+v, want due 2024-02-29 in 4 days", alerts)
	}
}

func TestScanAlertsLeadTimeSources(t *testing.T) {
	p := payment(t, 500, 15, "2025-01-01", "2099-12-31")
	p.AlertLeadDays = 3
	now := at(t, "2025-05-08")

	if got := ScanAlerts([]models.RecurringPayment{p}, nil, now, perRecord); len(got) != 0 {
		t.Fatalf("record lead time 3 should hide a payment 7 days out, got %+v", got)
	}
	if got := ScanAlerts([]models.RecurringPayment{p}, nil, now, AlertOptions{LookaheadDays: 15}); len(got) != 1 {
		t.Fatalf("global window 15 should show the payment, got %+v", got)
	}

	p.AlertLeadDays = 0
	if got := ScanAlerts([]models.RecurringPayment{p}, nil, now, perRecord); len(got) != 1 {
		t.Fatalf("missing lead time should fall back to %d days, got %+v", DefaultLeadDays, got)
	}
	if got := ScanAlerts([]models.RecurringPayment{p}, nil, at(t, "2025-05-04"), AlertOptions{}); len(got) != 0 {
		t.Fatalf("11 days out is beyond the default window, got %+v", got)
	}
}

func TestScanAlertsSkipsOutsideActiveWindow(t *testing.T) {
	notStarted := payment(t, 1, 10, "2025-07-01", "2099-12-31")
	ended := payment(t, 2, 10, "2025-01-01", "2025-06-05")
	inactive := payment(t, 3, 10, "2025-01-01", "2099-12-31")
	inactive.Active = false

	alerts := ScanAlerts([]models.RecurringPayment{notStarted, ended, inactive}, nil, at(t, "2025-06-06"), perRecord)
	if len(alerts) != 0 {
		t.Fatalf("got %+v, want no alerts", alerts)
	}
}

func TestScanAlertsInstallments(t *testing.T) {
	active := models.NewInstallmentPurchase("Laptop", 1200, 12, mustDate(t, "2025-01-20"), 20, 10)
	active.ID = 7
	paidOff := models.NewInstallmentPurchase("Phone", 600, 6, mustDate(t, "2025-01-18"), 18, 10)
	paidOff.ApplyEarlyPayment(6)
	zeroRemaining := models.NewInstallmentPurchase("Desk", 300, 3, mustDate(t, "2025-01-19"), 19, 10)
	zeroRemaining.InstallmentsRemaining = 0

	alerts := ScanAlerts(nil, []models.InstallmentPurchase{*active, *paidOff, *zeroRemaining}, at(t, "2025-03-15"), perRecord)
	if len(alerts) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(alerts), alerts)
	}
	a := alerts[0]
	if a.SourceKind != models.SourceInstallment || a.SourceID != 7 || a.Name != "Laptop" || a.Amount != 100 {
		t.Fatalf("alert = %+v", a)
	}
	if a.DueDate.String() != "2025-03-20" || a.DaysRemaining != 5 || a.Urgency != models.UrgencyNear {
		t.Fatalf("alert due %s in %d (%s)", a.DueDate, a.DaysRemaining, a.Urgency)
	}
}

func TestScanAlertsInstallmentWindow(t *testing.T) {
	single := models.NewInstallmentPurchase("Chair", 150, 1, mustDate(t, "2025-03-20"), 20, 10)

	if got := ScanAlerts(nil, []models.InstallmentPurchase{*single}, at(t, "2025-03-15"), perRecord); len(got) != 1 {
		t.Fatalf("first installment 5 days out should alert, got %+v", got)
	}
	// March's installment is past and April is outside the window
	if got := ScanAlerts(nil, []models.InstallmentPurchase{*single}, at(t, "2025-03-25"), AlertOptions{LookaheadDays: 40}); len(got) != 0 {
		t.Fatalf("finished window should not alert, got %+v", got)
	}
	// not started yet: the first candidate month is before the first installment
	future := models.NewInstallmentPurchase("Bike", 400, 4, mustDate(t, "2025-05-02"), 2, 10)
	if got := ScanAlerts(nil, []models.InstallmentPurchase{*future}, at(t, "2025-03-30"), AlertOptions{LookaheadDays: 5}); len(got) != 0 {
		t.Fatalf("installment not started should not alert, got %+v", got)
	}
}

func TestScanAlertsSkipsDueDatesPastEndMonth(t *testing.T) {
	now := at(t, "2026-10-17")
	opts := AlertOptions{LookaheadDays: 30}

	ending := payment(t, 500, 5, "2026-01-01", "2026-10-20")
	if got := ScanAlerts([]models.RecurringPayment{ending}, nil, now, opts); len(got) != 0 {
		t.Fatalf("alerts = %+v, want none after the last charged month", got)
	}

	// the end month itself is still charged, whatever the day
	lastMonth := payment(t, 500, 25, "2026-01-01", "2026-10-20")
	got := ScanAlerts([]models.RecurringPayment{lastMonth}, nil, now, opts)
	if len(got) != 1 || got[0].DueDate.String() != "2026-10-25" || got[0].DaysRemaining != 8 {
		t.Fatalf("alerts = %+v, want one due 2026-10-25", got)
	}

	snap := Snapshot{Payments: []models.RecurringPayment{ending, lastMonth}}
	out := NewEngine(nil).Project(snap, Periods(now, 2, models.Monthly, DefaultPayDays))
	if out[0].PaymentTotal != 1000 || out[1].PaymentTotal != 0 {
		t.Fatalf("payment totals = %v/%v, want 1000/0", out[0].PaymentTotal, out[1].PaymentTotal)
	}
}
