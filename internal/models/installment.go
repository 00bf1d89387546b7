package models

import "time"

// InstallmentPurchase represents a purchase paid in equal monthly installments
type InstallmentPurchase struct {
	ID                    int64     `json:"id"`
	Product               string    `json:"product"`
	TotalPrice            float64   `json:"total_price"`
	TotalInstallments     int       `json:"total_installments"`
	MonthlyAmount         float64   `json:"monthly_amount"`
	FirstInstallmentDate  Date      `json:"first_installment_date"`
	InstallmentsRemaining int       `json:"installments_remaining"`
	DayOfMonth            int       `json:"day_of_month"`
	AlertLeadDays         int       `json:"alert_lead_days"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"created_at"`
}

// NewInstallmentPurchase derives the monthly amount once; installments must be >= 1.
func NewInstallmentPurchase(product string, price float64, installments int, first Date, day, leadDays int) *InstallmentPurchase {
	return &InstallmentPurchase{
		Product:               product,
		TotalPrice:            price,
		TotalInstallments:     installments,
		MonthlyAmount:         price / float64(installments),
		FirstInstallmentDate:  first,
		InstallmentsRemaining: installments,
		DayOfMonth:            day,
		AlertLeadDays:         leadDays,
		Active:                true,
	}
}

// DueDay returns the day of month installments fall due.
func (p *InstallmentPurchase) DueDay() int {
	if p.DayOfMonth > 0 {
		return p.DayOfMonth
	}
	return p.FirstInstallmentDate.Day()
}

// ApplyEarlyPayment decrements the remaining count by periods, clamped at zero.
// A purchase with nothing left is deactivated.
func (p *InstallmentPurchase) ApplyEarlyPayment(periods int) {
	if periods < 0 {
		periods = 0
	}
	p.InstallmentsRemaining -= periods
	if p.InstallmentsRemaining <= 0 {
		p.InstallmentsRemaining = 0
		p.Active = false
	}
}
