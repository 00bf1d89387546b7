package forecast

import (
	"testing"

	"github.com/Dan9191/finance-tracker/internal/models"
)

func card(id int64, cutoff, pay int) models.CreditCard {
	return models.CreditCard{ID: id, Name: "visa", CutoffDay: cutoff, PaymentDay: pay, AlertLeadDays: 10, Active: true}
}

func charge(t *testing.T, cardID int64, date string, amount float64) models.CardCharge {
	t.Helper()
	return models.CardCharge{CardID: cardID, Date: mustDate(t, date), Concept: "groceries", Amount: amount}
}

func TestStatementDates(t *testing.T) {
	tests := []struct {
		cutoff, pay int
		charged     string
		wantCutoff  string
		wantDue     string
	}{
		{20, 10, "2025-03-05", "2025-03-20", "2025-04-10"},
		{20, 10, "2025-03-20", "2025-03-20", "2025-04-10"},
		{20, 10, "2025-03-21", "2025-04-20", "2025-05-10"},
		{5, 25, "2025-03-01", "2025-03-05", "2025-03-25"},
		{31, 15, "2025-02-10", "2025-02-28", "2025-03-15"},
		{31, 15, "2025-01-31", "2025-01-31", "2025-02-15"},
		{28, 31, "2025-02-28", "2025-02-28", "2025-03-31"},
	}
	for _, tt := range tests {
		cutoff, due := StatementDates(card(1, tt.cutoff, tt.pay), mustDate(t, tt.charged))
		if cutoff.String() != tt.wantCutoff || due.String() != tt.wantDue {
			t.Errorf("StatementDates(cutoff %d, pay %d, %s) = %s/%s, want %s/%s",
				tt.cutoff, tt.pay, tt.charged, cutoff, due, tt.wantCutoff, tt.wantDue)
		}
	}
}

func TestStatementsGroupByCycle(t *testing.T) {
	inactive := card(2, 10, 20)
	inactive.Active = false
	cards := []models.CreditCard{card(1, 20, 10), inactive}
	charges := []models.CardCharge{
		charge(t, 1, "2025-02-03", 300),
		charge(t, 1, "2025-01-25", 500),
		charge(t, 1, "2025-01-02", 120.10),
		charge(t, 1, "2025-01-03", 79.90),
		charge(t, 2, "2025-01-05", 999),
		charge(t, 7, "2025-01-05", 999),
	}

	got := Statements(cards, charges)
	if len(got) != 2 {
		t.Fatalf("statements = %+v, want 2", got)
	}
	if got[0].DueDate.String() != "2025-02-10" || got[0].Amount != 200 || got[0].Charges != 2 {
		t.Errorf("first statement = %+v, want 200 due 2025-02-10", got[0])
	}
	if got[1].CutoffDate.String() != "2025-02-20" || got[1].Amount != 800 || got[1].Charges != 2 {
		t.Errorf("second statement = %+v, want 800 closing 2025-02-20", got[1])
	}
}

func TestProjectChargesOpenStatements(t *testing.T) {
	now := at(t, "2025-01-15")
	snap := NewSnapshot(models.Snapshot{
		Cards: []models.CreditCard{card(1, 20, 10)},
		CardCharges: []models.CardCharge{
			charge(t, 1, "2024-12-01", 400), // due 2025-01-10, already settled
			charge(t, 1, "2025-01-25", 500),
			charge(t, 1, "2025-02-03", 300),
		},
	}, now)
	if len(snap.Statements) != 1 {
		t.Fatalf("open statements = %+v, want 1", snap.Statements)
	}

	monthly := NewEngine(nil).Project(snap, Periods(now, 3, models.Monthly, DefaultPayDays))
	for i, want := range []float64{0, 0, 800} {
		if monthly[i].PaymentTotal != want {
			t.Errorf("monthly period %d payments = %v, want %v", i, monthly[i].PaymentTotal, want)
		}
	}
	if monthly[2].EndingBalance != -800 {
		t.Errorf("ending balance = %v, want -800", monthly[2].EndingBalance)
	}

	semi := NewEngine(nil).Project(snap, Periods(now, 4, models.SemiMonthly, PayDays{First: 10, Second: 25}))
	for i, want := range []float64{0, 0, 0, 800} {
		if semi[i].PaymentTotal != want {
			t.Errorf("semi-monthly period %s payments = %v, want %v", semi[i].Label, semi[i].PaymentTotal, want)
		}
	}
}

func TestAlertsIncludeCardStatements(t *testing.T) {
	now := at(t, "2025-03-02")
	snap := NewSnapshot(models.Snapshot{
		Payments:    []models.RecurringPayment{payment(t, 100, 3, "2025-01-01", "2099-12-31")},
		Cards:       []models.CreditCard{card(1, 20, 10)},
		CardCharges: []models.CardCharge{charge(t, 1, "2025-02-03", 800)},
	}, now)

	alerts := Alerts(snap, now, perRecord)
	if len(alerts) != 2 {
		t.Fatalf("alerts = %+v, want 2", alerts)
	}
	if alerts[0].SourceKind != models.SourcePayment || alerts[0].DaysRemaining != 1 {
		t.Errorf("first alert = %+v, want the payment due tomorrow", alerts[0])
	}
	st := alerts[1]
	if st.SourceKind != models.SourceCard || st.Amount != 800 || st.DueDate.String() != "2025-03-10" || st.DaysRemaining != 8 {
		t.Errorf("card alert = %+v", st)
	}

	if got := Alerts(snap, now, AlertOptions{LookaheadDays: 5}); len(got) != 1 {
		t.Errorf("alerts with 5 day window = %+v, want only the payment", got)
	}
}

func TestCardSummaries(t *testing.T) {
	limited := card(1, 20, 10)
	limited.CreditLimit = 5000
	unlimited := card(2, 20, 10)
	charges := []models.CardCharge{
		charge(t, 1, "2025-01-02", 400), // due 2025-02-10
		charge(t, 1, "2025-02-03", 800), // due 2025-03-10
		charge(t, 2, "2025-02-03", 50),
	}

	got := CardSummaries([]models.CreditCard{limited, unlimited}, charges, at(t, "2025-02-15"))
	if len(got) != 2 {
		t.Fatalf("summaries = %d, want 2", len(got))
	}
	if got[0].Balance != 800 || got[0].AvailableCredit != 4200 || len(got[0].Statements) != 1 {
		t.Errorf("limited card = %+v", got[0])
	}
	if got[1].Balance != 50 || got[1].AvailableCredit != 0 {
		t.Errorf("unlimited card = %+v", got[1])
	}
}
