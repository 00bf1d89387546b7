// Package forecast projects future account balance from recurring and
// installment commitments, scans for upcoming payments and simulates
// candidate installment purchases. It is pure: callers pass a snapshot of
// records and the current instant, nothing is read or written here.
package forecast

import (
	"fmt"
	"iter"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// PayDays are the two days of month that close semi-monthly periods.
// A day past the end of a month resolves to its last day, so 31 means
// "last day of month".
type PayDays struct {
	First  int
	Second int
}

// DefaultPayDays closes periods on the 15th and on the last day of the month.
var DefaultPayDays = PayDays{First: 15, Second: 31}

func (pd PayDays) ordered() (int, int) {
	if pd.First <= pd.Second {
		return pd.First, pd.Second
	}
	return pd.Second, pd.First
}

// Period is one projection step. Commitments whose due date falls in
// [Start, End] are charged to it.
type Period struct {
	Index int
	Label string
	Year  int
	Month time.Month
	Start models.Date
	End   models.Date
}

// months lists the calendar months the period window touches.
func (p Period) months() [][2]int {
	first := [2]int{p.Start.Year(), int(p.Start.Month())}
	last := [2]int{p.End.Year(), int(p.End.Month())}
	if first == last {
		return [][2]int{first}
	}
	return [][2]int{first, last}
}

// dueIn materializes day in the months the period covers and returns the
// first due date falling inside the window.
func (p Period) dueIn(day int) (models.Date, bool) {
	if day < 1 {
		day = 1
	}
	for _, ym := range p.months() {
		due := ResolveDay(ym[0], time.Month(ym[1]), day)
		if !due.Before(p.Start.Time) && !due.After(p.End.Time) {
			return due, true
		}
	}
	return models.Date{}, false
}

// ResolveDay materializes day of month; a day that does not exist in the
// month resolves to the month's last day. day must be in [1,31].
func ResolveDay(year int, month time.Month, day int) models.Date {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return models.NewDate(year, month, day)
}

// SmartStartDate returns the first occurrence of day on or after today.
func SmartStartDate(now time.Time, day int) models.Date {
	today := models.DateOf(now)
	d := ResolveDay(today.Year(), today.Month(), day)
	if d.Before(today.Time) {
		y, m := addMonths(today.Year(), today.Month(), 1)
		return ResolveDay(y, m, day)
	}
	return d
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	idx := year*12 + int(month) - 1 + n
	return idx / 12, time.Month(idx%12 + 1)
}

// Periods lazily yields count periods starting from the period containing now.
// A non-positive count yields nothing.
func Periods(now time.Time, count int, granularity models.Granularity, payDays PayDays) iter.Seq[Period] {
	return func(yield func(Period) bool) {
		if count <= 0 {
			return
		}
		if granularity == models.SemiMonthly {
			semiMonthly(models.DateOf(now), count, payDays, yield)
			return
		}
		monthly(models.DateOf(now), count, yield)
	}
}

func monthly(today models.Date, count int, yield func(Period) bool) {
	for i := 0; i < count; i++ {
		y, m := addMonths(today.Year(), today.Month(), i)
		p := Period{
			Index: i,
			Label: fmt.Sprintf("%04d-%02d", y, int(m)),
			Year:  y,
			Month: m,
			Start: models.NewDate(y, m, 1),
			End:   models.NewDate(y, m, daysIn(y, m)),
		}
		if !yield(p) {
			return
		}
	}
}

// semiMonthly walks pay dates from the previous month on. Each emitted
// period runs from the day after the previous pay date up to its own pay
// date; the first one is the earliest pay date not before today.
func semiMonthly(today models.Date, count int, payDays PayDays, yield func(Period) bool) {
	lo, hi := payDays.ordered()
	var prev models.Date
	idx := 0
	for off := -1; ; off++ {
		y, m := addMonths(today.Year(), today.Month(), off)
		for _, day := range [2]int{lo, hi} {
			due := ResolveDay(y, m, day)
			// 30 and 31 collapse onto the same date in short months
			if !prev.IsZero() && !due.After(prev.Time) {
				continue
			}
			if due.Before(today.Time) {
				prev = due
				continue
			}
			p := Period{
				Index: idx,
				Label: due.String(),
				Year:  y,
				Month: m,
				Start: models.DateOf(prev.AddDate(0, 0, 1)),
				End:   due,
			}
			if !yield(p) {
				return
			}
			prev = due
			idx++
			if idx == count {
				return
			}
		}
	}
}
