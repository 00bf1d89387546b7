package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// CreateCard stores a new credit card
func (r *Repository) CreateCard(ctx context.Context, c *models.CreditCard) error {
	query := `
		INSERT INTO finance.credit_cards
			(name, cutoff_day, payment_day, credit_limit, alert_lead_days, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.CutoffDay, c.PaymentDay, c.CreditLimit, c.AlertLeadDays, c.Active).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}
	return nil
}

const cardColumns = `id, name, cutoff_day, payment_day, credit_limit, alert_lead_days, active, created_at`

func scanCard(row interface{ Scan(...any) error }, c *models.CreditCard) error {
	return row.Scan(&c.ID, &c.Name, &c.CutoffDay, &c.PaymentDay, &c.CreditLimit, &c.AlertLeadDays, &c.Active, &c.CreatedAt)
}

// GetCard retrieves a credit card by ID
func (r *Repository) GetCard(ctx context.Context, id int64) (*models.CreditCard, error) {
	c := &models.CreditCard{}
	err := scanCard(r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM finance.credit_cards WHERE id = $1`, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("credit card %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credit card: %w", err)
	}
	return c, nil
}

// ListCards returns credit cards ordered by payment day
func (r *Repository) ListCards(ctx context.Context, activeOnly bool) ([]models.CreditCard, error) {
	return listCards(ctx, r.db, activeOnly)
}

func listCards(ctx context.Context, q querier, activeOnly bool) ([]models.CreditCard, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+cardColumns+`
		FROM finance.credit_cards
		WHERE active OR NOT $1
		ORDER BY payment_day, id`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	defer rows.Close()

	var out []models.CreditCard
	for rows.Next() {
		var c models.CreditCard
		if err := scanCard(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetCardActive soft-activates or deactivates a credit card
func (r *Repository) SetCardActive(ctx context.Context, id int64, active bool) error {
	return execOne(ctx, r.db, "update credit card", `UPDATE finance.credit_cards SET active = $2 WHERE id = $1`, id, active)
}

// DeleteCard removes a credit card together with its charges
func (r *Repository) DeleteCard(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete credit card", `DELETE FROM finance.credit_cards WHERE id = $1`, id)
}

// CreateCardCharge records a purchase on a card
func (r *Repository) CreateCardCharge(ctx context.Context, ch *models.CardCharge) error {
	query := `
		INSERT INTO finance.card_charges (card_id, date, concept, amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, ch.CardID, ch.Date, ch.Concept, ch.Amount, ch.Category).
		Scan(&ch.ID, &ch.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card charge: %w", err)
	}
	return nil
}

// ListCardCharges returns charges of one card, or of every card when cardID is 0
func (r *Repository) ListCardCharges(ctx context.Context, cardID int64) ([]models.CardCharge, error) {
	return listCardCharges(ctx, r.db, cardID)
}

func listCardCharges(ctx context.Context, q querier, cardID int64) ([]models.CardCharge, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, card_id, date, concept, amount, category, created_at
		FROM finance.card_charges
		WHERE card_id = $1 OR $1 = 0
		ORDER BY date DESC, id DESC`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card charges: %w", err)
	}
	defer rows.Close()

	var out []models.CardCharge
	for rows.Next() {
		var ch models.CardCharge
		if err := rows.Scan(&ch.ID, &ch.CardID, &ch.Date, &ch.Concept, &ch.Amount, &ch.Category, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card charge: %w", err)
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

// DeleteCardCharge removes a card charge
func (r *Repository) DeleteCardCharge(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete card charge", `DELETE FROM finance.card_charges WHERE id = $1`, id)
}
