package service

import (
	"context"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// Store is the cash-flow record store the service reads snapshots from
type Store interface {
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)

	GetSettings(ctx context.Context) (*models.Settings, error)
	SetStartingBalance(ctx context.Context, balance float64) error

	CreateMovement(ctx context.Context, m *models.OneTimeMovement) error
	ListMovements(ctx context.Context) ([]models.OneTimeMovement, error)
	DeleteMovement(ctx context.Context, id int64) error

	CreateRecurringIncome(ctx context.Context, in *models.RecurringIncome) error
	ListRecurringIncomes(ctx context.Context, activeOnly bool) ([]models.RecurringIncome, error)
	SetRecurringIncomeActive(ctx context.Context, id int64, active bool) error
	DeleteRecurringIncome(ctx context.Context, id int64) error

	CreateRecurringPayment(ctx context.Context, p *models.RecurringPayment) error
	ListRecurringPayments(ctx context.Context, activeOnly bool) ([]models.RecurringPayment, error)
	SetRecurringPaymentActive(ctx context.Context, id int64, active bool) error
	DeleteRecurringPayment(ctx context.Context, id int64) error

	CreateInstallment(ctx context.Context, p *models.InstallmentPurchase) error
	GetInstallment(ctx context.Context, id int64) (*models.InstallmentPurchase, error)
	ListInstallments(ctx context.Context, activeOnly bool) ([]models.InstallmentPurchase, error)
	ApplyEarlyPayment(ctx context.Context, id int64, periods int) (*models.InstallmentPurchase, error)
	SetInstallmentActive(ctx context.Context, id int64, active bool) error
	DeleteInstallment(ctx context.Context, id int64) error

	CreateCard(ctx context.Context, c *models.CreditCard) error
	GetCard(ctx context.Context, id int64) (*models.CreditCard, error)
	ListCards(ctx context.Context, activeOnly bool) ([]models.CreditCard, error)
	SetCardActive(ctx context.Context, id int64, active bool) error
	DeleteCard(ctx context.Context, id int64) error
	CreateCardCharge(ctx context.Context, ch *models.CardCharge) error
	ListCardCharges(ctx context.Context, cardID int64) ([]models.CardCharge, error)
	DeleteCardCharge(ctx context.Context, id int64) error

	SaveSimulation(ctx context.Context, res *models.SimulationResult) error
}
