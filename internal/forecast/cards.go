package forecast

import (
	"cmp"
	"slices"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// StatementDates returns the cutoff that closes a charge made on d and the
// date that statement is due. A charge on the cutoff day belongs to that
// statement. The due date is the first payment day after the cutoff.
func StatementDates(card models.CreditCard, d models.Date) (cutoff, due models.Date) {
	cutoff = ResolveDay(d.Year(), d.Month(), clampDay(card.CutoffDay))
	if d.After(cutoff.Time) {
		y, m := addMonths(d.Year(), d.Month(), 1)
		cutoff = ResolveDay(y, m, clampDay(card.CutoffDay))
	}
	due = ResolveDay(cutoff.Year(), cutoff.Month(), clampDay(card.PaymentDay))
	if !due.After(cutoff.Time) {
		y, m := addMonths(cutoff.Year(), cutoff.Month(), 1)
		due = ResolveDay(y, m, clampDay(card.PaymentDay))
	}
	return cutoff, due
}

func clampDay(day int) int {
	return min(max(day, 1), 31)
}

// Statements groups the charges of active cards into billing cycles,
// ordered by due date. Charges of unknown or inactive cards are ignored.
func Statements(cards []models.CreditCard, charges []models.CardCharge) []models.CardStatement {
	var out []models.CardStatement
	for _, c := range cards {
		if c.Active {
			out = append(out, cardStatements(c, charges)...)
		}
	}
	sortStatements(out)
	return out
}

// OpenStatements keeps the statements due on or after the day of now.
// Earlier statements are settled and show up as realized expenses.
func OpenStatements(statements []models.CardStatement, now time.Time) []models.CardStatement {
	today := models.DateOf(now)
	out := make([]models.CardStatement, 0, len(statements))
	for _, st := range statements {
		if !st.DueDate.Before(today.Time) {
			out = append(out, st)
		}
	}
	return out
}

func cardStatements(card models.CreditCard, charges []models.CardCharge) []models.CardStatement {
	type cycle struct {
		due    models.Date
		amount decimal.Decimal
		count  int
	}
	cycles := map[string]*cycle{}
	var order []models.Date
	for _, ch := range charges {
		if ch.CardID != card.ID {
			continue
		}
		cutoff, due := StatementDates(card, ch.Date)
		cy, ok := cycles[cutoff.String()]
		if !ok {
			cy = &cycle{due: due}
			cycles[cutoff.String()] = cy
			order = append(order, cutoff)
		}
		cy.amount = cy.amount.Add(decimal.NewFromFloat(ch.Amount))
		cy.count++
	}

	out := make([]models.CardStatement, 0, len(order))
	for _, cutoff := range order {
		cy := cycles[cutoff.String()]
		out = append(out, models.CardStatement{
			CardID:     card.ID,
			CardName:   card.Name,
			CutoffDate: cutoff,
			DueDate:    cy.due,
			Amount:     cy.amount.InexactFloat64(),
			Charges:    cy.count,
		})
	}
	sortStatements(out)
	return out
}

func sortStatements(s []models.CardStatement) {
	slices.SortStableFunc(s, func(a, b models.CardStatement) int {
		if c := a.DueDate.Compare(b.DueDate.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.CardID, b.CardID)
	})
}

// CardSummaries reports each card's open statements, unpaid balance and the
// credit left under its limit. A card without a limit reports no available credit.
func CardSummaries(cards []models.CreditCard, charges []models.CardCharge, now time.Time) []models.CardSummary {
	out := make([]models.CardSummary, 0, len(cards))
	for _, c := range cards {
		open := OpenStatements(cardStatements(c, charges), now)
		balance := decimal.Zero
		for _, st := range open {
			balance = balance.Add(decimal.NewFromFloat(st.Amount))
		}
		sum := models.CardSummary{
			CreditCard: c,
			Balance:    models.RoundMoney(balance.InexactFloat64()),
			Statements: open,
		}
		if c.CreditLimit > 0 {
			sum.AvailableCredit = models.RoundMoney(decimal.NewFromFloat(c.CreditLimit).Sub(balance).InexactFloat64())
		}
		out = append(out, sum)
	}
	return out
}

// ScanStatementAlerts raises one alert per open statement due within the
// window. The card's lead time applies in per-record mode.
func ScanStatementAlerts(cards []models.CreditCard, statements []models.CardStatement, now time.Time, opts AlertOptions) []models.Alert {
	today := models.DateOf(now)
	lead := make(map[int64]int, len(cards))
	for _, c := range cards {
		lead[c.ID] = c.AlertLeadDays
	}

	alerts := make([]models.Alert, 0)
	for _, st := range statements {
		days := daysBetween(today, st.DueDate)
		if days < 0 || days > opts.window(lead[st.CardID]) {
			continue
		}
		alerts = append(alerts, models.Alert{
			SourceKind:    models.SourceCard,
			SourceID:      st.CardID,
			Name:          st.CardName,
			Amount:        models.RoundMoney(st.Amount),
			DueDate:       st.DueDate,
			DaysRemaining: days,
			Urgency:       urgencyFor(days),
			Notes:         "statement closed " + st.CutoffDate.String(),
		})
	}
	return alerts
}

// Alerts scans every commitment in the snapshot and orders the result by
// days remaining.
func Alerts(s Snapshot, now time.Time, opts AlertOptions) []models.Alert {
	alerts := ScanAlerts(s.Payments, s.Installments, now, opts)
	alerts = append(alerts, ScanStatementAlerts(s.Cards, s.Statements, now, opts)...)
	slices.SortStableFunc(alerts, func(a, b models.Alert) int {
		return cmp.Compare(a.DaysRemaining, b.DaysRemaining)
	})
	return alerts
}
