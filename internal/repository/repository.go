package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the finance schema if it does not exist
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadSnapshot reads everything a projection needs in one read-only transaction
func (r *Repository) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	snap := &models.Snapshot{}
	settings, err := getSettings(ctx, tx)
	if err != nil {
		return nil, err
	}
	snap.Settings = *settings
	if snap.Movements, err = listMovements(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Incomes, err = listRecurringIncomes(ctx, tx, true); err != nil {
		return nil, err
	}
	if snap.Payments, err = listRecurringPayments(ctx, tx, true); err != nil {
		return nil, err
	}
	if snap.Installments, err = listInstallments(ctx, tx, false); err != nil {
		return nil, err
	}
	if snap.Cards, err = listCards(ctx, tx, true); err != nil {
		return nil, err
	}
	if snap.CardCharges, err = listCardCharges(ctx, tx, 0); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to finish snapshot: %w", err)
	}
	return snap, nil
}

// GetSettings retrieves the starting balance
func (r *Repository) GetSettings(ctx context.Context) (*models.Settings, error) {
	return getSettings(ctx, r.db)
}

func getSettings(ctx context.Context, q querier) (*models.Settings, error) {
	s := &models.Settings{}
	err := q.QueryRowContext(ctx, `SELECT starting_balance, updated_at FROM finance.settings WHERE id = 1`).
		Scan(&s.StartingBalance, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// SetStartingBalance updates the user-configured starting balance
func (r *Repository) SetStartingBalance(ctx context.Context, balance float64) error {
	query := `
		INSERT INTO finance.settings (id, starting_balance, updated_at)
		VALUES (1, $1, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET starting_balance = EXCLUDED.starting_balance, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, balance); err != nil {
		return fmt.Errorf("failed to set starting balance: %w", err)
	}
	return nil
}

// CreateMovement records a one-time income or expense
func (r *Repository) CreateMovement(ctx context.Context, m *models.OneTimeMovement) error {
	query := `
		INSERT INTO finance.movements (date, amount, kind, description, category, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, m.Date, m.Amount, m.Kind, m.Description, m.Category).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create movement: %w", err)
	}
	return nil
}

// ListMovements returns all realized movements, newest first
func (r *Repository) ListMovements(ctx context.Context) ([]models.OneTimeMovement, error) {
	return listMovements(ctx, r.db)
}

func listMovements(ctx context.Context, q querier) ([]models.OneTimeMovement, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, date, amount, kind, description, category, created_at
		FROM finance.movements
		ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	var out []models.OneTimeMovement
	for rows.Next() {
		var m models.OneTimeMovement
		if err := rows.Scan(&m.ID, &m.Date, &m.Amount, &m.Kind, &m.Description, &m.Category, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMovement removes a movement
func (r *Repository) DeleteMovement(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete movement", `DELETE FROM finance.movements WHERE id = $1`, id)
}

// CreateRecurringIncome stores a new recurring income
func (r *Repository) CreateRecurringIncome(ctx context.Context, in *models.RecurringIncome) error {
	query := `
		INSERT INTO finance.recurring_incomes (name, amount, day_of_month, start_date, end_date, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, in.Name, in.Amount, in.DayOfMonth, in.StartDate, in.EndDate, in.Active).
		Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring income: %w", err)
	}
	return nil
}

// ListRecurringIncomes returns recurring incomes ordered by day of month
func (r *Repository) ListRecurringIncomes(ctx context.Context, activeOnly bool) ([]models.RecurringIncome, error) {
	return listRecurringIncomes(ctx, r.db, activeOnly)
}

func listRecurringIncomes(ctx context.Context, q querier, activeOnly bool) ([]models.RecurringIncome, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, amount, day_of_month, start_date, end_date, active, created_at
		FROM finance.recurring_incomes
		WHERE active OR NOT $1
		ORDER BY day_of_month, id`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring incomes: %w", err)
	}
	defer rows.Close()

	var out []models.RecurringIncome
	for rows.Next() {
		var in models.RecurringIncome
		if err := rows.Scan(&in.ID, &in.Name, &in.Amount, &in.DayOfMonth, &in.StartDate, &in.EndDate, &in.Active, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring income: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// SetRecurringIncomeActive soft-activates or deactivates a recurring income
func (r *Repository) SetRecurringIncomeActive(ctx context.Context, id int64, active bool) error {
	return execOne(ctx, r.db, "update recurring income", `UPDATE finance.recurring_incomes SET active = $2 WHERE id = $1`, id, active)
}

// DeleteRecurringIncome removes a recurring income
func (r *Repository) DeleteRecurringIncome(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete recurring income", `DELETE FROM finance.recurring_incomes WHERE id = $1`, id)
}

// CreateRecurringPayment stores a new loan or programmed credit
func (r *Repository) CreateRecurringPayment(ctx context.Context, p *models.RecurringPayment) error {
	query := `
		INSERT INTO finance.recurring_payments
			(name, amount, day_of_month, start_date, end_date, active, alert_lead_days, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Amount, p.DayOfMonth, p.StartDate, p.EndDate, p.Active, p.AlertLeadDays, p.Notes).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring payment: %w", err)
	}
	return nil
}

// ListRecurringPayments returns recurring payments ordered by day of month
func (r *Repository) ListRecurringPayments(ctx context.Context, activeOnly bool) ([]models.RecurringPayment, error) {
	return listRecurringPayments(ctx, r.db, activeOnly)
}

func listRecurringPayments(ctx context.Context, q querier, activeOnly bool) ([]models.RecurringPayment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, amount, day_of_month, start_date, end_date, active, alert_lead_days, notes, created_at
		FROM finance.recurring_payments
		WHERE active OR NOT $1
		ORDER BY day_of_month, id`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payments: %w", err)
	}
	defer rows.Close()

	var out []models.RecurringPayment
	for rows.Next() {
		var p models.RecurringPayment
		if err := rows.Scan(&p.ID, &p.Name, &p.Amount, &p.DayOfMonth, &p.StartDate, &p.EndDate,
			&p.Active, &p.AlertLeadDays, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetRecurringPaymentActive soft-activates or deactivates a recurring payment
func (r *Repository) SetRecurringPaymentActive(ctx context.Context, id int64, active bool) error {
	return execOne(ctx, r.db, "update recurring payment", `UPDATE finance.recurring_payments SET active = $2 WHERE id = $1`, id, active)
}

// DeleteRecurringPayment removes a recurring payment
func (r *Repository) DeleteRecurringPayment(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete recurring payment", `DELETE FROM finance.recurring_payments WHERE id = $1`, id)
}

// CreateInstallment stores a new installment purchase
func (r *Repository) CreateInstallment(ctx context.Context, p *models.InstallmentPurchase) error {
	query := `
		INSERT INTO finance.installment_purchases
			(product, total_price, total_installments, monthly_amount, first_installment_date,
			 installments_remaining, day_of_month, alert_lead_days, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, p.Product, p.TotalPrice, p.TotalInstallments, p.MonthlyAmount,
		p.FirstInstallmentDate, p.InstallmentsRemaining, p.DayOfMonth, p.AlertLeadDays, p.Active).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create installment purchase: %w", err)
	}
	return nil
}

const installmentColumns = `id, product, total_price, total_installments, monthly_amount, first_installment_date,
	installments_remaining, day_of_month, alert_lead_days, active, created_at`

func scanInstallment(row interface{ Scan(...any) error }, p *models.InstallmentPurchase) error {
	return row.Scan(&p.ID, &p.Product, &p.TotalPrice, &p.TotalInstallments, &p.MonthlyAmount, &p.FirstInstallmentDate,
		&p.InstallmentsRemaining, &p.DayOfMonth, &p.AlertLeadDays, &p.Active, &p.CreatedAt)
}

// GetInstallment retrieves an installment purchase by ID
func (r *Repository) GetInstallment(ctx context.Context, id int64) (*models.InstallmentPurchase, error) {
	p := &models.InstallmentPurchase{}
	row := r.db.QueryRowContext(ctx, `SELECT `+installmentColumns+` FROM finance.installment_purchases WHERE id = $1`, id)
	err := scanInstallment(row, p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("installment purchase %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installment purchase: %w", err)
	}
	return p, nil
}

// ListInstallments returns installment purchases, most remaining first
func (r *Repository) ListInstallments(ctx context.Context, activeOnly bool) ([]models.InstallmentPurchase, error) {
	return listInstallments(ctx, r.db, activeOnly)
}

func listInstallments(ctx context.Context, q querier, activeOnly bool) ([]models.InstallmentPurchase, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+installmentColumns+`
		FROM finance.installment_purchases
		WHERE active OR NOT $1
		ORDER BY installments_remaining DESC, id`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list installment purchases: %w", err)
	}
	defer rows.Close()

	var out []models.InstallmentPurchase
	for rows.Next() {
		var p models.InstallmentPurchase
		if err := scanInstallment(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan installment purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ApplyEarlyPayment decrements the remaining count in one statement, so
// concurrent early payments never lose a decrement. A purchase with nothing
// left is deactivated.
func (r *Repository) ApplyEarlyPayment(ctx context.Context, id int64, periods int) (*models.InstallmentPurchase, error) {
	query := `
		UPDATE finance.installment_purchases
		SET installments_remaining = GREATEST(installments_remaining - $2, 0),
			active = active AND installments_remaining - $2 > 0
		WHERE id = $1
		RETURNING ` + installmentColumns
	p := &models.InstallmentPurchase{}
	err := scanInstallment(r.db.QueryRowContext(ctx, query, id, periods), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("installment purchase %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register early payment: %w", err)
	}
	return p, nil
}

// SetInstallmentActive soft-activates or deactivates an installment purchase
func (r *Repository) SetInstallmentActive(ctx context.Context, id int64, active bool) error {
	return execOne(ctx, r.db, "update installment purchase",
		`UPDATE finance.installment_purchases SET active = $2 WHERE id = $1`, id, active)
}

// DeleteInstallment removes an installment purchase
func (r *Repository) DeleteInstallment(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete installment purchase", `DELETE FROM finance.installment_purchases WHERE id = $1`, id)
}

// SaveSimulation records a simulation run for history
func (r *Repository) SaveSimulation(ctx context.Context, res *models.SimulationResult) error {
	query := `
		INSERT INTO finance.simulations
			(id, price, installments, monthly_amount, verdict, critical_period_index, minimum_balance, final_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var critical sql.NullInt64
	if res.CriticalPeriodIndex != nil {
		critical = sql.NullInt64{Int64: int64(*res.CriticalPeriodIndex), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, res.ID, res.Price, res.Installments, res.MonthlyAmount,
		string(res.Verdict), critical, res.MinimumBalance, res.FinalBalance, res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save simulation: %w", err)
	}
	return nil
}

func execOne(ctx context.Context, q querier, what, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("failed to %s %v: %w", what, args[0], models.ErrNotFound)
	}
	return nil
}
