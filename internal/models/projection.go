package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Health is the coarse safety tier of a projected balance
type Health string

const (
	HealthGreen Health = "green"
	HealthAmber Health = "amber"
	HealthRed   Health = "red"
)

// Granularity selects how the projection horizon is split into periods
type Granularity string

const (
	Monthly     Granularity = "monthly"
	SemiMonthly Granularity = "semi_monthly"
)

// PeriodProjection represents the projected balance at the end of one period
type PeriodProjection struct {
	Label         string  `json:"period_label"`
	Start         Date    `json:"start"`
	End           Date    `json:"end"`
	IncomeTotal   float64 `json:"income_total"`
	PaymentTotal  float64 `json:"payment_total"`
	EndingBalance float64 `json:"ending_balance"`
	Health        Health  `json:"health"`
}

// SourceKind names the commitment type an alert was raised for
type SourceKind string

const (
	SourcePayment     SourceKind = "payment"
	SourceInstallment SourceKind = "installment"
	SourceCard        SourceKind = "card"
)

// Urgency grades an alert by days remaining
type Urgency string

const (
	UrgencyUrgent    Urgency = "urgent"
	UrgencyNear      Urgency = "near"
	UrgencyScheduled Urgency = "scheduled"
)

// Alert represents an upcoming payment of a single commitment
type Alert struct {
	SourceKind    SourceKind `json:"source_kind"`
	SourceID      int64      `json:"source_id"`
	Name          string     `json:"name"`
	Amount        float64    `json:"amount"`
	DueDate       Date       `json:"due_date"`
	DaysRemaining int        `json:"days_remaining"`
	Urgency       Urgency    `json:"urgency"`
	Notes         string     `json:"notes"`
}

// Verdict is the simulator's recommendation for a candidate purchase
type Verdict string

const (
	VerdictGo      Verdict = "GO"
	VerdictCaution Verdict = "CAUTION"
	VerdictNoGo    Verdict = "NO-GO"
)

// PeriodSimulation compares one period with and without the candidate purchase
type PeriodSimulation struct {
	Index           int     `json:"index"`
	Label           string  `json:"period_label"`
	IncomeTotal     float64 `json:"income_total"`
	PaymentTotal    float64 `json:"payment_total"`
	CandidateAmount float64 `json:"candidate_amount"`
	BalanceWithout  float64 `json:"balance_without"`
	BalanceWith     float64 `json:"balance_with"`
	Difference      float64 `json:"difference"`
	HealthWithout   Health  `json:"health_without"`
	HealthWith      Health  `json:"health_with"`
}

// SimulationResult represents the outcome of a what-if installment purchase
type SimulationResult struct {
	ID                  string             `json:"id,omitempty"`
	Price               float64            `json:"price"`
	Installments        int                `json:"installments"`
	MonthlyAmount       float64            `json:"monthly_amount"`
	StartingBalance     float64            `json:"starting_balance"`
	PerPeriod           []PeriodSimulation `json:"per_period"`
	Verdict             Verdict            `json:"verdict"`
	CriticalPeriodIndex *int               `json:"critical_period_index"`
	CriticalPeriodLabel string             `json:"critical_period_label,omitempty"`
	MinimumBalance      float64            `json:"minimum_balance"`
	FinalBalance        float64            `json:"final_balance"`
	CreatedAt           time.Time          `json:"created_at"`
}

// RoundMoney rounds an amount to cents for output.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
