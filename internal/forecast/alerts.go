package forecast

import (
	"cmp"
	"slices"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

const (
	// DefaultLeadDays applies when neither the record nor the caller sets a window.
	DefaultLeadDays = 10
	// alertSearchMonths is how many months, starting with the current one,
	// are searched for a commitment's next due date.
	alertSearchMonths = 3
)

// AlertOptions selects the look-ahead window used by ScanAlerts.
type AlertOptions struct {
	// UseRecordLeadTime makes each commitment's own alert lead time the window.
	// Otherwise LookaheadDays is applied to every commitment.
	UseRecordLeadTime bool
	LookaheadDays     int
}

func (o AlertOptions) window(recordLeadDays int) int {
	if o.UseRecordLeadTime {
		if recordLeadDays > 0 {
			return recordLeadDays
		}
		return DefaultLeadDays
	}
	if o.LookaheadDays > 0 {
		return o.LookaheadDays
	}
	return DefaultLeadDays
}

// ScanAlerts returns at most one alert per commitment, for its earliest due
// date within the look-ahead window, sorted by days remaining.
func ScanAlerts(payments []models.RecurringPayment, installments []models.InstallmentPurchase, now time.Time, opts AlertOptions) []models.Alert {
	today := models.DateOf(now)
	alerts := make([]models.Alert, 0)

	for _, p := range payments {
		if !p.Active {
			continue
		}
		if today.Before(p.StartDate.Time) || today.After(p.EndDate.Time) {
			continue
		}
		// same month range the projection charges
		inRange := func(due models.Date) bool { return withinMonths(due, p.StartDate, p.EndDate) }
		due, days, ok := nextDue(today, p.DayOfMonth, opts.window(p.AlertLeadDays), inRange)
		if !ok {
			continue
		}
		alerts = append(alerts, models.Alert{
			SourceKind:    models.SourcePayment,
			SourceID:      p.ID,
			Name:          p.Name,
			Amount:        p.Amount,
			DueDate:       due,
			DaysRemaining: days,
			Urgency:       urgencyFor(days),
			Notes:         p.Notes,
		})
	}

	for i := range installments {
		inst := &installments[i]
		if !inst.Active || inst.InstallmentsRemaining <= 0 {
			continue
		}
		last := inst.FirstInstallmentDate.MonthIndex() + inst.TotalInstallments - 1
		if today.MonthIndex() > last {
			continue
		}
		inWindow := func(due models.Date) bool { return installmentDue(inst, due) }
		due, days, ok := nextDue(today, inst.DueDay(), opts.window(inst.AlertLeadDays), inWindow)
		if !ok {
			continue
		}
		alerts = append(alerts, models.Alert{
			SourceKind:    models.SourceInstallment,
			SourceID:      inst.ID,
			Name:          inst.Product,
			Amount:        inst.MonthlyAmount,
			DueDate:       due,
			DaysRemaining: days,
			Urgency:       urgencyFor(days),
		})
	}

	slices.SortStableFunc(alerts, func(a, b models.Alert) int {
		return cmp.Compare(a.DaysRemaining, b.DaysRemaining)
	})
	return alerts
}

// nextDue searches the current and following months for the first due date
// in [today, today+window]. accept, when set, filters candidate dates.
func nextDue(today models.Date, day, window int, accept func(models.Date) bool) (models.Date, int, bool) {
	if day < 1 {
		day = 1
	}
	for off := 0; off < alertSearchMonths; off++ {
		y, m := addMonths(today.Year(), today.Month(), off)
		due := ResolveDay(y, m, day)
		if accept != nil && !accept(due) {
			continue
		}
		days := daysBetween(today, due)
		if days >= 0 && days <= window {
			return due, days, true
		}
	}
	return models.Date{}, 0, false
}

func daysBetween(from, to models.Date) int {
	return int(to.Sub(from.Time).Hours() / 24)
}

func urgencyFor(days int) models.Urgency {
	switch {
	case days <= 2:
		return models.UrgencyUrgent
	case days <= 5:
		return models.UrgencyNear
	default:
		return models.UrgencyScheduled
	}
}
