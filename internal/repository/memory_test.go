package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

func TestMemoryStoreSnapshotFiltersInactiveRecurring(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	active := &models.RecurringIncome{Name: "salary", Amount: 100, DayOfMonth: 1, Active: true}
	inactive := &models.RecurringIncome{Name: "bonus", Amount: 50, DayOfMonth: 1, Active: true}
	for _, in := range []*models.RecurringIncome{active, inactive} {
		if err := s.CreateRecurringIncome(ctx, in); err != nil {
			t.Fatalf("CreateRecurringIncome: %v", err)
		}
	}
	if err := s.SetRecurringIncomeActive(ctx, inactive.ID, false); err != nil {
		t.Fatalf("SetRecurringIncomeActive: %v", err)
	}
	paid := models.NewInstallmentPurchase("TV", 300, 3, models.NewDate(2025, time.January, 1), 1, 10)
	if err := s.CreateInstallment(ctx, paid); err != nil {
		t.Fatalf("CreateInstallment: %v", err)
	}
	if _, err := s.ApplyEarlyPayment(ctx, paid.ID, 3); err != nil {
		t.Fatalf("ApplyEarlyPayment: %v", err)
	}

	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Incomes) != 1 || snap.Incomes[0].Name != "salary" {
		t.Fatalf("snapshot incomes = %+v, want only salary", snap.Incomes)
	}
	if len(snap.Installments) != 1 {
		t.Fatalf("snapshot installments = %d, want inactive purchase kept", len(snap.Installments))
	}

	all, _ := s.ListRecurringIncomes(ctx, false)
	if len(all) != 2 {
		t.Fatalf("ListRecurringIncomes(all) = %d, want 2", len(all))
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	checks := map[string]error{
		"delete movement":  s.DeleteMovement(ctx, 9),
		"delete income":    s.DeleteRecurringIncome(ctx, 9),
		"delete payment":   s.DeleteRecurringPayment(ctx, 9),
		"toggle payment":   s.SetRecurringPaymentActive(ctx, 9, false),
		"toggle purchase":  s.SetInstallmentActive(ctx, 9, false),
		"toggle card":      s.SetCardActive(ctx, 9, false),
		"delete card":      s.DeleteCard(ctx, 9),
		"delete charge":    s.DeleteCardCharge(ctx, 9),
		"charge no card":   s.CreateCardCharge(ctx, &models.CardCharge{CardID: 9, Amount: 1}),
	}
	for name, err := range checks {
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("%s: err = %v, want ErrNotFound", name, err)
		}
	}
	if _, err := s.GetInstallment(ctx, 9); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("GetInstallment err = %v, want ErrNotFound", err)
	}
	if _, err := s.ApplyEarlyPayment(ctx, 9, 1); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("ApplyEarlyPayment err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetCard(ctx, 9); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("GetCard err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreMovementsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, d := range []string{"2025-01-05", "2025-03-01", "2025-02-10"} {
		date, _ := models.ParseDate(d)
		if err := s.CreateMovement(ctx, &models.OneTimeMovement{Date: date, Amount: 1, Kind: models.MovementIncome}); err != nil {
			t.Fatalf("CreateMovement: %v", err)
		}
	}
	list, _ := s.ListMovements(ctx)
	if list[0].Date.String() != "2025-03-01" || list[2].Date.String() != "2025-01-05" {
		t.Fatalf("order = %s, %s, %s", list[0].Date, list[1].Date, list[2].Date)
	}
	if err := s.DeleteMovement(ctx, list[1].ID); err != nil {
		t.Fatalf("DeleteMovement: %v", err)
	}
	if list, _ = s.ListMovements(ctx); len(list) != 2 {
		t.Fatalf("len after delete = %d, want 2", len(list))
	}
}

func TestMemoryStoreConcurrentEarlyPayments(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	p := models.NewInstallmentPurchase("Laptop", 1200, 12, models.NewDate(2025, time.January, 10), 10, 10)
	if err := s.CreateInstallment(ctx, p); err != nil {
		t.Fatalf("CreateInstallment: %v", err)
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ApplyEarlyPayment(ctx, p.ID, 1); err != nil {
				t.Errorf("ApplyEarlyPayment: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.GetInstallment(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetInstallment: %v", err)
	}
	if got.InstallmentsRemaining != 2 || !got.Active {
		t.Fatalf("remaining = %d active = %t, want 2 and active", got.InstallmentsRemaining, got.Active)
	}

	last, err := s.ApplyEarlyPayment(ctx, p.ID, 5)
	if err != nil {
		t.Fatalf("ApplyEarlyPayment: %v", err)
	}
	if last.InstallmentsRemaining != 0 || last.Active {
		t.Fatalf("after overpay remaining = %d active = %t, want 0 and inactive", last.InstallmentsRemaining, last.Active)
	}
}

func TestMemoryStoreCardsAndCharges(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	visa := &models.CreditCard{Name: "Visa", CutoffDay: 20, PaymentDay: 10, Active: true}
	amex := &models.CreditCard{Name: "Amex", CutoffDay: 5, PaymentDay: 25, Active: true}
	for _, c := range []*models.CreditCard{visa, amex} {
		if err := s.CreateCard(ctx, c); err != nil {
			t.Fatalf("CreateCard: %v", err)
		}
	}
	for _, d := range []string{"2025-01-05", "2025-01-15"} {
		date, _ := models.ParseDate(d)
		if err := s.CreateCardCharge(ctx, &models.CardCharge{CardID: visa.ID, Date: date, Amount: 100}); err != nil {
			t.Fatalf("CreateCardCharge: %v", err)
		}
	}
	if err := s.CreateCardCharge(ctx, &models.CardCharge{CardID: amex.ID, Date: models.NewDate(2025, time.January, 2), Amount: 40}); err != nil {
		t.Fatalf("CreateCardCharge: %v", err)
	}
	if err := s.SetCardActive(ctx, amex.ID, false); err != nil {
		t.Fatalf("SetCardActive: %v", err)
	}

	snap, _ := s.LoadSnapshot(ctx)
	if len(snap.Cards) != 1 || snap.Cards[0].Name != "Visa" {
		t.Fatalf("snapshot cards = %+v, want only Visa", snap.Cards)
	}
	if len(snap.CardCharges) != 3 {
		t.Fatalf("snapshot charges = %d, want 3", len(snap.CardCharges))
	}

	visaCharges, _ := s.ListCardCharges(ctx, visa.ID)
	if len(visaCharges) != 2 || visaCharges[0].Date.String() != "2025-01-15" {
		t.Fatalf("visa charges = %+v, want two newest first", visaCharges)
	}

	if err := s.DeleteCard(ctx, visa.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	all, _ := s.ListCardCharges(ctx, 0)
	if len(all) != 1 || all[0].CardID != amex.ID {
		t.Fatalf("charges after delete = %+v, want only the amex charge", all)
	}
}
