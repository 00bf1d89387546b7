package service

import (
	"context"
	"slices"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/forecast"
	"github.com/Dan9191/finance-tracker/internal/models"
)

// AddMovement records a realized income or expense
func (s *Service) AddMovement(ctx context.Context, m *models.OneTimeMovement) error {
	if m.Kind != models.MovementIncome && m.Kind != models.MovementExpense {
		return models.Invalid("kind", "must be %q or %q", models.MovementIncome, models.MovementExpense)
	}
	if err := validateAmount("amount", m.Amount); err != nil {
		return err
	}
	category, err := validateCategory(m.Category)
	if err != nil {
		return err
	}
	m.Category = category
	if m.Date.IsZero() {
		m.Date = models.DateOf(s.now())
	}
	if err := s.store.CreateMovement(ctx, m); err != nil {
		return err
	}
	s.log.Infof("Movement recorded: %s %.2f on %s", m.Kind, m.Amount, m.Date)
	return nil
}

// ListMovements returns realized movements, restricted to one category when
// category is not empty
func (s *Service) ListMovements(ctx context.Context, category string) ([]models.OneTimeMovement, error) {
	movements, err := s.store.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return movements, nil
	}
	return slices.DeleteFunc(movements, func(m models.OneTimeMovement) bool {
		return !strings.EqualFold(m.Category, category)
	}), nil
}

// DeleteMovement removes a realized movement
func (s *Service) DeleteMovement(ctx context.Context, id int64) error {
	if err := s.store.DeleteMovement(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Movement %d deleted", id)
	return nil
}

// AddRecurringIncome validates and stores a recurring income. A missing start
// date defaults to the next occurrence of its day, a missing end date to the
// indefinite sentinel.
func (s *Service) AddRecurringIncome(ctx context.Context, in *models.RecurringIncome) error {
	name, err := validateName("name", in.Name)
	if err != nil {
		return err
	}
	in.Name = name
	if err := validateAmount("amount", in.Amount); err != nil {
		return err
	}
	if err := validateDay("day_of_month", in.DayOfMonth); err != nil {
		return err
	}
	in.StartDate, in.EndDate = s.defaultRange(in.StartDate, in.EndDate, in.DayOfMonth)
	if err := validateRange(in.StartDate, in.EndDate); err != nil {
		return err
	}
	in.Active = true

	if err := s.store.CreateRecurringIncome(ctx, in); err != nil {
		return err
	}
	s.log.Infof("Recurring income created: %s %.2f on day %d", in.Name, in.Amount, in.DayOfMonth)
	return nil
}

// AddRecurringPayment validates and stores a loan or programmed credit
func (s *Service) AddRecurringPayment(ctx context.Context, p *models.RecurringPayment) error {
	name, err := validateName("name", p.Name)
	if err != nil {
		return err
	}
	p.Name = name
	if err := validateAmount("amount", p.Amount); err != nil {
		return err
	}
	if err := validateDay("day_of_month", p.DayOfMonth); err != nil {
		return err
	}
	if err := validateLeadDays(p.AlertLeadDays); err != nil {
		return err
	}
	if p.AlertLeadDays == 0 {
		p.AlertLeadDays = forecast.DefaultLeadDays
	}
	p.StartDate, p.EndDate = s.defaultRange(p.StartDate, p.EndDate, p.DayOfMonth)
	if err := validateRange(p.StartDate, p.EndDate); err != nil {
		return err
	}
	p.Active = true

	if err := s.store.CreateRecurringPayment(ctx, p); err != nil {
		return err
	}
	s.log.Infof("Recurring payment created: %s %.2f on day %d", p.Name, p.Amount, p.DayOfMonth)
	return nil
}

func (s *Service) defaultRange(start, end models.Date, day int) (models.Date, models.Date) {
	if start.IsZero() {
		start = forecast.SmartStartDate(s.now(), day)
	}
	if end.IsZero() {
		end = models.IndefiniteEndDate
	}
	return start, end
}

// ListRecurringIncomes returns recurring incomes
func (s *Service) ListRecurringIncomes(ctx context.Context, activeOnly bool) ([]models.RecurringIncome, error) {
	return s.store.ListRecurringIncomes(ctx, activeOnly)
}

// ListRecurringPayments returns recurring payments
func (s *Service) ListRecurringPayments(ctx context.Context, activeOnly bool) ([]models.RecurringPayment, error) {
	return s.store.ListRecurringPayments(ctx, activeOnly)
}

// SetRecurringIncomeActive soft-activates or deactivates a recurring income
func (s *Service) SetRecurringIncomeActive(ctx context.Context, id int64, active bool) error {
	if err := s.store.SetRecurringIncomeActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Infof("Recurring income %d active=%t", id, active)
	return nil
}

// SetRecurringPaymentActive soft-activates or deactivates a recurring payment
func (s *Service) SetRecurringPaymentActive(ctx context.Context, id int64, active bool) error {
	if err := s.store.SetRecurringPaymentActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Infof("Recurring payment %d active=%t", id, active)
	return nil
}

// DeleteRecurringIncome removes a recurring income
func (s *Service) DeleteRecurringIncome(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecurringIncome(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Recurring income %d deleted", id)
	return nil
}

// DeleteRecurringPayment removes a recurring payment
func (s *Service) DeleteRecurringPayment(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecurringPayment(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Recurring payment %d deleted", id)
	return nil
}

// InstallmentInput is the caller's description of a new installment purchase
type InstallmentInput struct {
	Product              string      `json:"product"`
	TotalPrice           float64     `json:"total_price"`
	TotalInstallments    int         `json:"total_installments"`
	FirstInstallmentDate models.Date `json:"first_installment_date"`
	DayOfMonth           int         `json:"day_of_month"`
	AlertLeadDays        int         `json:"alert_lead_days"`
}

// AddInstallment validates and stores an installment purchase
func (s *Service) AddInstallment(ctx context.Context, in InstallmentInput) (*models.InstallmentPurchase, error) {
	product, err := validateName("product", in.Product)
	if err != nil {
		return nil, err
	}
	if err := validateAmount("total_price", in.TotalPrice); err != nil {
		return nil, err
	}
	if in.TotalInstallments < 1 {
		return nil, models.Invalid("total_installments", "must be at least 1, got %d", in.TotalInstallments)
	}
	if in.DayOfMonth != 0 {
		if err := validateDay("day_of_month", in.DayOfMonth); err != nil {
			return nil, err
		}
	}
	if err := validateLeadDays(in.AlertLeadDays); err != nil {
		return nil, err
	}
	lead := in.AlertLeadDays
	if lead == 0 {
		lead = forecast.DefaultLeadDays
	}
	first := in.FirstInstallmentDate
	if first.IsZero() {
		day := in.DayOfMonth
		if day == 0 {
			day = models.DateOf(s.now()).Day()
		}
		first = forecast.SmartStartDate(s.now(), day)
	}

	p := models.NewInstallmentPurchase(product, in.TotalPrice, in.TotalInstallments, first, in.DayOfMonth, lead)
	if err := s.store.CreateInstallment(ctx, p); err != nil {
		return nil, err
	}
	s.log.Infof("Installment purchase created: %s %.2f in %d installments from %s", p.Product, p.TotalPrice, p.TotalInstallments, p.FirstInstallmentDate)
	return p, nil
}

// ListInstallments returns installment purchases
func (s *Service) ListInstallments(ctx context.Context, activeOnly bool) ([]models.InstallmentPurchase, error) {
	return s.store.ListInstallments(ctx, activeOnly)
}

// GetInstallment returns one installment purchase
func (s *Service) GetInstallment(ctx context.Context, id int64) (*models.InstallmentPurchase, error) {
	return s.store.GetInstallment(ctx, id)
}

// EarlyPayment registers periods paid in advance, decrementing the remaining
// count. A purchase with nothing left is deactivated, never deleted.
func (s *Service) EarlyPayment(ctx context.Context, id int64, periods int) (*models.InstallmentPurchase, error) {
	if periods < 1 {
		return nil, models.Invalid("periods", "must be at least 1, got %d", periods)
	}
	p, err := s.store.ApplyEarlyPayment(ctx, id, periods)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Early payment registered for %s: %d periods, %d remaining", p.Product, periods, p.InstallmentsRemaining)
	return p, nil
}

// SetInstallmentActive soft-activates or deactivates an installment purchase.
// The projection keeps charging the original schedule either way.
func (s *Service) SetInstallmentActive(ctx context.Context, id int64, active bool) error {
	if err := s.store.SetInstallmentActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Infof("Installment purchase %d active=%t", id, active)
	return nil
}

// DeleteInstallment removes an installment purchase
func (s *Service) DeleteInstallment(ctx context.Context, id int64) error {
	if err := s.store.DeleteInstallment(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Installment purchase %d deleted", id)
	return nil
}
