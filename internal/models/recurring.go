package models

import "time"

// RecurringIncome represents an income received every month within its date range
type RecurringIncome struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Amount     float64   `json:"amount"`
	DayOfMonth int       `json:"day_of_month"`
	StartDate  Date      `json:"start_date"`
	EndDate    Date      `json:"end_date"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecurringPayment represents a programmed loan or credit payment
type RecurringPayment struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
	DayOfMonth    int       `json:"day_of_month"`
	StartDate     Date      `json:"start_date"`
	EndDate       Date      `json:"end_date"`
	Active        bool      `json:"active"`
	AlertLeadDays int       `json:"alert_lead_days"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}
