package service

import (
	"math"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/models"
)

func validateAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return models.Invalid(field, "must be a number")
	}
	if v < 0 {
		return models.Invalid(field, "must not be negative")
	}
	return nil
}

func validateDay(field string, day int) error {
	if day < 1 || day > 31 {
		return models.Invalid(field, "must be between 1 and 31, got %d", day)
	}
	return nil
}

func validateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.Invalid(field, "is required")
	}
	if len(name) > 200 {
		return "", models.Invalid(field, "must be at most 200 characters")
	}
	return name, nil
}

func validateRange(start, end models.Date) error {
	if end.Before(start.Time) {
		return models.Invalid("end_date", "must not be before start_date")
	}
	return nil
}

func validateLeadDays(days int) error {
	if days < 0 {
		return models.Invalid("alert_lead_days", "must not be negative")
	}
	return nil
}

func validateCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if len(category) > 50 {
		return "", models.Invalid("category", "must be at most 50 characters")
	}
	return category, nil
}
