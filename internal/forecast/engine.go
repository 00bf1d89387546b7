package forecast

import (
	"iter"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// HealthPolicy classifies a projected balance into a health tier.
type HealthPolicy interface {
	Classify(balance float64) models.Health
}

// FixedThresholds classifies on the absolute balance: green above High,
// amber above Low, red otherwise.
type FixedThresholds struct {
	High float64
	Low  float64
}

// DefaultThresholds are 10,000 and 0 currency units.
var DefaultThresholds = FixedThresholds{High: 10000, Low: 0}

// Classify implements HealthPolicy.
func (t FixedThresholds) Classify(balance float64) models.Health {
	switch {
	case balance > t.High:
		return models.HealthGreen
	case balance > t.Low:
		return models.HealthAmber
	default:
		return models.HealthRed
	}
}

// Snapshot is the engine input for one projection run.
type Snapshot struct {
	StartingBalance float64
	// RealizedNet is realized incomes minus realized expenses.
	RealizedNet  float64
	Incomes      []models.RecurringIncome
	Payments     []models.RecurringPayment
	Installments []models.InstallmentPurchase
	Cards        []models.CreditCard
	// Statements are the open card statements, charged on their due date.
	Statements []models.CardStatement
}

// NewSnapshot folds a store read model into engine input. Card statements
// already due before now are left out.
func NewSnapshot(s models.Snapshot, now time.Time) Snapshot {
	return Snapshot{
		StartingBalance: s.Settings.StartingBalance,
		RealizedNet:     RealizedNet(s.Movements),
		Incomes:         s.Incomes,
		Payments:        s.Payments,
		Installments:    s.Installments,
		Cards:           s.Cards,
		Statements:      OpenStatements(Statements(s.Cards, s.CardCharges), now),
	}
}

// InitialBalance is the balance the first period starts from.
func (s Snapshot) InitialBalance() float64 {
	return s.StartingBalance + s.RealizedNet
}

// RealizedTotals sums realized incomes and expenses. Sums are exact, so the
// result does not depend on movement order.
func RealizedTotals(movements []models.OneTimeMovement) (income, expense float64) {
	in, out := decimal.Zero, decimal.Zero
	for _, m := range movements {
		switch m.Kind {
		case models.MovementIncome:
			in = in.Add(decimal.NewFromFloat(m.Amount))
		case models.MovementExpense:
			out = out.Add(decimal.NewFromFloat(m.Amount))
		}
	}
	return in.InexactFloat64(), out.InexactFloat64()
}

// RealizedNet returns realized incomes minus realized expenses.
func RealizedNet(movements []models.OneTimeMovement) float64 {
	income, expense := RealizedTotals(movements)
	return decimal.NewFromFloat(income).Sub(decimal.NewFromFloat(expense)).InexactFloat64()
}

// Engine runs balance projections.
type Engine struct {
	policy HealthPolicy
}

// NewEngine creates an engine; a nil policy uses DefaultThresholds.
func NewEngine(policy HealthPolicy) *Engine {
	if policy == nil {
		policy = DefaultThresholds
	}
	return &Engine{policy: policy}
}

// Classify exposes the engine's health policy.
func (e *Engine) Classify(balance float64) models.Health {
	return e.policy.Classify(balance)
}

// Project applies each period's incomes and payments to a running balance.
func (e *Engine) Project(s Snapshot, periods iter.Seq[Period]) []models.PeriodProjection {
	out := make([]models.PeriodProjection, 0)
	balance := s.InitialBalance()
	for p := range periods {
		income, payments := periodTotals(s, p)
		balance += income - payments
		out = append(out, models.PeriodProjection{
			Label:         p.Label,
			Start:         p.Start,
			End:           p.End,
			IncomeTotal:   income,
			PaymentTotal:  payments,
			EndingBalance: balance,
			Health:        e.policy.Classify(balance),
		})
	}
	return out
}

func periodTotals(s Snapshot, p Period) (income, payments float64) {
	for _, in := range s.Incomes {
		if !in.Active {
			continue
		}
		if due, ok := p.dueIn(in.DayOfMonth); ok && withinMonths(due, in.StartDate, in.EndDate) {
			income += in.Amount
		}
	}
	for _, pay := range s.Payments {
		if !pay.Active {
			continue
		}
		if due, ok := p.dueIn(pay.DayOfMonth); ok && withinMonths(due, pay.StartDate, pay.EndDate) {
			payments += pay.Amount
		}
	}
	for i := range s.Installments {
		inst := &s.Installments[i]
		if due, ok := p.dueIn(inst.DueDay()); ok && installmentDue(inst, due) {
			payments += inst.MonthlyAmount
		}
	}
	for _, st := range s.Statements {
		if !st.DueDate.Before(p.Start.Time) && !st.DueDate.After(p.End.Time) {
			payments += st.Amount
		}
	}
	return income, payments
}

// withinMonths compares at month granularity; days are ignored.
func withinMonths(d, start, end models.Date) bool {
	m := d.MonthIndex()
	return start.MonthIndex() <= m && m <= end.MonthIndex()
}

// installmentDue reports whether the month of due is inside the purchase's
// original installment window. The live remaining counter is not consulted.
func installmentDue(p *models.InstallmentPurchase, due models.Date) bool {
	elapsed := due.MonthIndex() - p.FirstInstallmentDate.MonthIndex()
	return elapsed >= 0 && elapsed < p.TotalInstallments
}
