package service

import (
	"context"

	"github.com/Dan9191/finance-tracker/internal/forecast"
	"github.com/Dan9191/finance-tracker/internal/models"
)

// AddCard validates and stores a credit card
func (s *Service) AddCard(ctx context.Context, c *models.CreditCard) error {
	name, err := validateName("name", c.Name)
	if err != nil {
		return err
	}
	c.Name = name
	if err := validateDay("cutoff_day", c.CutoffDay); err != nil {
		return err
	}
	if err := validateDay("payment_day", c.PaymentDay); err != nil {
		return err
	}
	if err := validateAmount("credit_limit", c.CreditLimit); err != nil {
		return err
	}
	if err := validateLeadDays(c.AlertLeadDays); err != nil {
		return err
	}
	if c.AlertLeadDays == 0 {
		c.AlertLeadDays = forecast.DefaultLeadDays
	}
	c.Active = true

	if err := s.store.CreateCard(ctx, c); err != nil {
		return err
	}
	s.log.Infof("Credit card created: %s cutoff day %d payment day %d", c.Name, c.CutoffDay, c.PaymentDay)
	return nil
}

// ListCards returns cards with their unpaid statements and balances
func (s *Service) ListCards(ctx context.Context, activeOnly bool) ([]models.CardSummary, error) {
	cards, err := s.store.ListCards(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	charges, err := s.store.ListCardCharges(ctx, 0)
	if err != nil {
		return nil, err
	}
	return forecast.CardSummaries(cards, charges, s.now()), nil
}

// SetCardActive soft-activates or deactivates a credit card
func (s *Service) SetCardActive(ctx context.Context, id int64, active bool) error {
	if err := s.store.SetCardActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Infof("Credit card %d active=%t", id, active)
	return nil
}

// DeleteCard removes a credit card and its charges
func (s *Service) DeleteCard(ctx context.Context, id int64) error {
	if err := s.store.DeleteCard(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Credit card %d deleted", id)
	return nil
}

// AddCardCharge records a purchase on an existing card. A missing date
// defaults to today.
func (s *Service) AddCardCharge(ctx context.Context, ch *models.CardCharge) error {
	if _, err := s.store.GetCard(ctx, ch.CardID); err != nil {
		return err
	}
	concept, err := validateName("concept", ch.Concept)
	if err != nil {
		return err
	}
	ch.Concept = concept
	if err := validateAmount("amount", ch.Amount); err != nil {
		return err
	}
	if ch.Category, err = validateCategory(ch.Category); err != nil {
		return err
	}
	if ch.Date.IsZero() {
		ch.Date = models.DateOf(s.now())
	}

	if err := s.store.CreateCardCharge(ctx, ch); err != nil {
		return err
	}
	s.log.Infof("Card charge recorded on card %d: %.2f on %s", ch.CardID, ch.Amount, ch.Date)
	return nil
}

// ListCardCharges returns the charges of one card
func (s *Service) ListCardCharges(ctx context.Context, cardID int64) ([]models.CardCharge, error) {
	if _, err := s.store.GetCard(ctx, cardID); err != nil {
		return nil, err
	}
	return s.store.ListCardCharges(ctx, cardID)
}

// DeleteCardCharge removes a card charge
func (s *Service) DeleteCardCharge(ctx context.Context, id int64) error {
	if err := s.store.DeleteCardCharge(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Card charge %d deleted", id)
	return nil
}
