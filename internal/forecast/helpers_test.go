package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// at returns noon of the given date so tests also cover time-of-day truncation.
func at(t *testing.T, s string) time.Time {
	t.Helper()
	return mustDate(t, s).Add(12 * time.Hour)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func income(t *testing.T, amount float64, day int, start, end string) models.RecurringIncome {
	t.Helper()
	return models.RecurringIncome{
		Name:       "salary",
		Amount:     amount,
		DayOfMonth: day,
		StartDate:  mustDate(t, start),
		EndDate:    mustDate(t, end),
		Active:     true,
	}
}

func payment(t *testing.T, amount float64, day int, start, end string) models.RecurringPayment {
	t.Helper()
	return models.RecurringPayment{
		Name:       "loan",
		Amount:     amount,
		DayOfMonth: day,
		StartDate:  mustDate(t, start),
		EndDate:    mustDate(t, end),
		Active:     true,
	}
}
