package models

import "time"

// MovementKind tells whether a one-time movement adds to or takes from the balance
type MovementKind string

const (
	MovementIncome  MovementKind = "income"
	MovementExpense MovementKind = "expense"
)

// OneTimeMovement represents an already realized income or expense
type OneTimeMovement struct {
	ID          int64        `json:"id"`
	Date        Date         `json:"date"`
	Amount      float64      `json:"amount"`
	Kind        MovementKind `json:"kind"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Settings holds the user-configured starting balance
type Settings struct {
	StartingBalance float64   `json:"starting_balance"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BalanceSummary represents the current balance and what it is made of
type BalanceSummary struct {
	StartingBalance float64 `json:"starting_balance"`
	RealizedIncome  float64 `json:"realized_income"`
	RealizedExpense float64 `json:"realized_expense"`
	CurrentBalance  float64 `json:"current_balance"`
}
