package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.February, 28)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-02-28"` {
		t.Fatalf("marshal = %s, want \"2025-02-28\"", b)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2099-12-31"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(IndefiniteEndDate.Time) {
		t.Fatalf("unmarshal = %s, want %s", back, IndefiniteEndDate)
	}

	var empty Date
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !empty.IsZero() {
		t.Fatalf("empty string should give zero date, got %s", empty)
	}

	if err := json.Unmarshal([]byte(`"31/01/2025"`), &back); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, 3, 4, 17, 30, 0, 0, time.Local)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2025-03-04" {
		t.Fatalf("scan time = %s, want 2025-03-04", d)
	}
	if err := d.Scan([]byte("2024-12-01")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if d.MonthIndex() != 2024*12+11 {
		t.Fatalf("MonthIndex = %d, want %d", d.MonthIndex(), 2024*12+11)
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("expected error scanning int")
	}
}

func TestNewInstallmentPurchase(t *testing.T) {
	p := NewInstallmentPurchase("Laptop", 1000, 3, NewDate(2025, time.January, 15), 0, 10)
	if math.Abs(p.MonthlyAmount*3-1000) > 1e-9 {
		t.Fatalf("MonthlyAmount*3 = %f, want 1000", p.MonthlyAmount*3)
	}
	if p.InstallmentsRemaining != 3 || !p.Active {
		t.Fatalf("new purchase remaining=%d active=%v", p.InstallmentsRemaining, p.Active)
	}
	if p.DueDay() != 15 {
		t.Fatalf("DueDay = %d, want 15 from first installment date", p.DueDay())
	}
}

func TestApplyEarlyPayment(t *testing.T) {
	p := NewInstallmentPurchase("Phone", 1200, 12, NewDate(2025, time.January, 10), 10, 5)
	p.ApplyEarlyPayment(4)
	if p.InstallmentsRemaining != 8 || !p.Active {
		t.Fatalf("after 4: remaining=%d active=%v, want 8 true", p.InstallmentsRemaining, p.Active)
	}
	before := p.MonthlyAmount
	p.ApplyEarlyPayment(20)
	if p.InstallmentsRemaining != 0 {
		t.Fatalf("remaining = %d, want clamp at 0", p.InstallmentsRemaining)
	}
	if p.Active {
		t.Fatal("purchase with nothing remaining should be inactive")
	}
	if p.MonthlyAmount != before {
		t.Fatal("early payment must not re-derive the monthly amount")
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := Invalid("total_installments", "must be at least 1, got %d", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("validation error should unwrap to ErrInvalidInput")
	}
	if err.Error() != "total_installments: must be at least 1, got 0" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestRoundMoney(t *testing.T) {
	if got := RoundMoney(1000.0 / 3); got != 333.33 {
		t.Fatalf("RoundMoney = %v, want 333.33", got)
	}
	if got := RoundMoney(2.005); got != 2.01 {
		t.Fatalf("RoundMoney(2.005) = %v, want 2.01", got)
	}
}
