package models

import "time"

// CreditCard is a card whose charges are billed on a monthly statement.
// Charges made up to the cutoff day are paid on the following payment day.
type CreditCard struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CutoffDay     int       `json:"cutoff_day"`
	PaymentDay    int       `json:"payment_day"`
	CreditLimit   float64   `json:"credit_limit"`
	AlertLeadDays int       `json:"alert_lead_days"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// CardCharge is a purchase charged to a credit card
type CardCharge struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	Date      Date      `json:"date"`
	Concept   string    `json:"concept"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// CardStatement is the amount due for one card billing cycle
type CardStatement struct {
	CardID     int64   `json:"card_id"`
	CardName   string  `json:"card_name"`
	CutoffDate Date    `json:"cutoff_date"`
	DueDate    Date    `json:"due_date"`
	Amount     float64 `json:"amount"`
	Charges    int     `json:"charges"`
}

// CardSummary represents a card with its unpaid statements
type CardSummary struct {
	CreditCard
	Balance         float64         `json:"balance"`
	AvailableCredit float64         `json:"available_credit"`
	Statements      []CardStatement `json:"statements"`
}
