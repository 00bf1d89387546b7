package forecast

import (
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

const (
	// minSimulationMonths is the shortest horizon a simulation covers.
	minSimulationMonths = 12
	// noGoPeriods: a red period among the first noGoPeriods means NO-GO.
	noGoPeriods = 3
)

// Simulate projects the snapshot twice in lockstep, without and with a
// candidate purchase of price paid over installments months, and derives
// a verdict from the first red period of the with-candidate run.
func (e *Engine) Simulate(price float64, installments int, s Snapshot, now time.Time) (models.SimulationResult, error) {
	if installments < 1 {
		return models.SimulationResult{}, models.Invalid("installments", "must be at least 1, got %d", installments)
	}
	if price < 0 {
		return models.SimulationResult{}, models.Invalid("price", "must not be negative")
	}

	monthlyAmount := price / float64(installments)
	horizon := max(installments, minSimulationMonths)
	initial := s.InitialBalance()

	result := models.SimulationResult{
		Price:           price,
		Installments:    installments,
		MonthlyAmount:   models.RoundMoney(monthlyAmount),
		StartingBalance: models.RoundMoney(initial),
		PerPeriod:       make([]models.PeriodSimulation, 0, horizon),
		Verdict:         models.VerdictGo,
	}

	without, with := initial, initial
	minimum := 0.0
	for p := range Periods(now, horizon, models.Monthly, DefaultPayDays) {
		income, payments := periodTotals(s, p)
		candidate := 0.0
		if p.Index < installments {
			candidate = monthlyAmount
		}
		without += income - payments
		with += income - payments - candidate

		healthWith := e.policy.Classify(with)
		if healthWith == models.HealthRed && result.CriticalPeriodIndex == nil {
			idx := p.Index
			result.CriticalPeriodIndex = &idx
			result.CriticalPeriodLabel = p.Label
			if idx < noGoPeriods {
				result.Verdict = models.VerdictNoGo
			} else {
				result.Verdict = models.VerdictCaution
			}
		}
		if p.Index == 0 || with < minimum {
			minimum = with
		}

		result.PerPeriod = append(result.PerPeriod, models.PeriodSimulation{
			Index:           p.Index,
			Label:           p.Label,
			IncomeTotal:     models.RoundMoney(income),
			PaymentTotal:    models.RoundMoney(payments),
			CandidateAmount: models.RoundMoney(candidate),
			BalanceWithout:  models.RoundMoney(without),
			BalanceWith:     models.RoundMoney(with),
			Difference:      models.RoundMoney(without - with),
			HealthWithout:   e.policy.Classify(without),
			HealthWith:      healthWith,
		})
	}

	result.MinimumBalance = models.RoundMoney(minimum)
	result.FinalBalance = models.RoundMoney(with)
	return result, nil
}
