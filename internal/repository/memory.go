package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// MemoryStore keeps records in process memory. It is used when no database
// is configured and in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	nextID       int64
	settings     models.Settings
	movements    []models.OneTimeMovement
	incomes      []models.RecurringIncome
	payments     []models.RecurringPayment
	installments []models.InstallmentPurchase
	cards        []models.CreditCard
	charges      []models.CardCharge
	simulations  []models.SimulationResult
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

// LoadSnapshot copies every record under one lock
func (m *MemoryStore) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &models.Snapshot{
		Settings:     m.settings,
		Movements:    slices.Clone(m.movements),
		Incomes:      filterActive(m.incomes, func(in models.RecurringIncome) bool { return in.Active }, true),
		Payments:     filterActive(m.payments, func(p models.RecurringPayment) bool { return p.Active }, true),
		Installments: slices.Clone(m.installments),
		Cards:        filterActive(m.cards, func(c models.CreditCard) bool { return c.Active }, true),
		CardCharges:  slices.Clone(m.charges),
	}, nil
}

func (m *MemoryStore) GetSettings(ctx context.Context) (*models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.settings
	return &s, nil
}

func (m *MemoryStore) SetStartingBalance(ctx context.Context, balance float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = models.Settings{StartingBalance: balance, UpdatedAt: time.Now()}
	return nil
}

func (m *MemoryStore) CreateMovement(ctx context.Context, mv *models.OneTimeMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv.ID, mv.CreatedAt = m.id(), time.Now()
	m.movements = append(m.movements, *mv)
	return nil
}

func (m *MemoryStore) ListMovements(ctx context.Context) ([]models.OneTimeMovement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.movements)
	slices.SortStableFunc(out, func(a, b models.OneTimeMovement) int {
		if c := b.Date.Compare(a.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (m *MemoryStore) DeleteMovement(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deleteByID(&m.movements, id, func(mv models.OneTimeMovement) int64 { return mv.ID }, "movement")
}

func (m *MemoryStore) CreateRecurringIncome(ctx context.Context, in *models.RecurringIncome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	in.ID, in.CreatedAt = m.id(), time.Now()
	m.incomes = append(m.incomes, *in)
	return nil
}

func (m *MemoryStore) ListRecurringIncomes(ctx context.Context, activeOnly bool) ([]models.RecurringIncome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filterActive(m.incomes, func(in models.RecurringIncome) bool { return in.Active }, activeOnly), nil
}

func (m *MemoryStore) SetRecurringIncomeActive(ctx context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.incomes {
		if m.incomes[i].ID == id {
			m.incomes[i].Active = active
			return nil
		}
	}
	return notFound("recurring income", id)
}

func (m *MemoryStore) DeleteRecurringIncome(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deleteByID(&m.incomes, id, func(in models.RecurringIncome) int64 { return in.ID }, "recurring income")
}

func (m *MemoryStore) CreateRecurringPayment(ctx context.Context, p *models.RecurringPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID, p.CreatedAt = m.id(), time.Now()
	m.payments = append(m.payments, *p)
	return nil
}

func (m *MemoryStore) ListRecurringPayments(ctx context.Context, activeOnly bool) ([]models.RecurringPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filterActive(m.payments, func(p models.RecurringPayment) bool { return p.Active }, activeOnly), nil
}

func (m *MemoryStore) SetRecurringPaymentActive(ctx context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.payments {
		if m.payments[i].ID == id {
			m.payments[i].Active = active
			return nil
		}
	}
	return notFound("recurring payment", id)
}

func (m *MemoryStore) DeleteRecurringPayment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deleteByID(&m.payments, id, func(p models.RecurringPayment) int64 { return p.ID }, "recurring payment")
}

func (m *MemoryStore) CreateInstallment(ctx context.Context, p *models.InstallmentPurchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID, p.CreatedAt = m.id(), time.Now()
	m.installments = append(m.installments, *p)
	return nil
}

func (m *MemoryStore) GetInstallment(ctx context.Context, id int64) (*models.InstallmentPurchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.installments {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, notFound("installment purchase", id)
}

func (m *MemoryStore) ListInstallments(ctx context.Context, activeOnly bool) ([]models.InstallmentPurchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := filterActive(m.installments, func(p models.InstallmentPurchase) bool { return p.Active }, activeOnly)
	slices.SortStableFunc(out, func(a, b models.InstallmentPurchase) int {
		return cmp.Compare(b.InstallmentsRemaining, a.InstallmentsRemaining)
	})
	return out, nil
}

func (m *MemoryStore) ApplyEarlyPayment(ctx context.Context, id int64, periods int) (*models.InstallmentPurchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.installments {
		if m.installments[i].ID == id {
			m.installments[i].ApplyEarlyPayment(periods)
			p := m.installments[i]
			return &p, nil
		}
	}
	return nil, notFound("installment purchase", id)
}

func (m *MemoryStore) SetInstallmentActive(ctx context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.installments {
		if m.installments[i].ID == id {
			m.installments[i].Active = active
			return nil
		}
	}
	return notFound("installment purchase", id)
}

func (m *MemoryStore) DeleteInstallment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deleteByID(&m.installments, id, func(p models.InstallmentPurchase) int64 { return p.ID }, "installment purchase")
}

func (m *MemoryStore) CreateCard(ctx context.Context, c *models.CreditCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID, c.CreatedAt = m.id(), time.Now()
	m.cards = append(m.cards, *c)
	return nil
}

func (m *MemoryStore) GetCard(ctx context.Context, id int64) (*models.CreditCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cards {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, notFound("credit card", id)
}

func (m *MemoryStore) ListCards(ctx context.Context, activeOnly bool) ([]models.CreditCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := filterActive(m.cards, func(c models.CreditCard) bool { return c.Active }, activeOnly)
	slices.SortStableFunc(out, func(a, b models.CreditCard) int { return cmp.Compare(a.PaymentDay, b.PaymentDay) })
	return out, nil
}

func (m *MemoryStore) SetCardActive(ctx context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cards {
		if m.cards[i].ID == id {
			m.cards[i].Active = active
			return nil
		}
	}
	return notFound("credit card", id)
}

// DeleteCard removes the card and its charges
func (m *MemoryStore) DeleteCard(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := deleteByID(&m.cards, id, func(c models.CreditCard) int64 { return c.ID }, "credit card"); err != nil {
		return err
	}
	m.charges = slices.DeleteFunc(m.charges, func(ch models.CardCharge) bool { return ch.CardID == id })
	return nil
}

func (m *MemoryStore) CreateCardCharge(ctx context.Context, ch *models.CardCharge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.ContainsFunc(m.cards, func(c models.CreditCard) bool { return c.ID == ch.CardID }) {
		return notFound("credit card", ch.CardID)
	}
	ch.ID, ch.CreatedAt = m.id(), time.Now()
	m.charges = append(m.charges, *ch)
	return nil
}

func (m *MemoryStore) ListCardCharges(ctx context.Context, cardID int64) ([]models.CardCharge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.CardCharge, 0, len(m.charges))
	for _, ch := range m.charges {
		if cardID == 0 || ch.CardID == cardID {
			out = append(out, ch)
		}
	}
	slices.SortStableFunc(out, func(a, b models.CardCharge) int {
		if c := b.Date.Compare(a.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (m *MemoryStore) DeleteCardCharge(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deleteByID(&m.charges, id, func(ch models.CardCharge) int64 { return ch.ID }, "card charge")
}

func (m *MemoryStore) SaveSimulation(ctx context.Context, res *models.SimulationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulations = append(m.simulations, *res)
	return nil
}

// Simulations returns the recorded simulation runs
func (m *MemoryStore) Simulations() []models.SimulationResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.simulations)
}

func filterActive[T any](items []T, active func(T) bool, activeOnly bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !activeOnly || active(it) {
			out = append(out, it)
		}
	}
	return out
}

func deleteByID[T any](items *[]T, id int64, idOf func(T) int64, what string) error {
	i := slices.IndexFunc(*items, func(it T) bool { return idOf(it) == id })
	if i < 0 {
		return notFound(what, id)
	}
	*items = slices.Delete(*items, i, i+1)
	return nil
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, models.ErrNotFound)
}
