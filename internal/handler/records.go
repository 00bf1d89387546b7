package handler

import (
	"context"
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/service"
)

func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListMovements(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(list))
}

func (h *Handler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	var m models.OneTimeMovement
	if !h.decode(w, r, &m) {
		return
	}
	if err := h.svc.AddMovement(r.Context(), &m); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) DeleteMovement(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteMovement)
}

func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListRecurringIncomes(r.Context(), r.URL.Query().Get("all") != "true")
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(list))
}

func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var in models.RecurringIncome
	if !h.decode(w, r, &in) {
		return
	}
	if err := h.svc.AddRecurringIncome(r.Context(), &in); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (h *Handler) SetIncomeActive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.SetRecurringIncomeActive)
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteRecurringIncome)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListRecurringPayments(r.Context(), r.URL.Query().Get("all") != "true")
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(list))
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var p models.RecurringPayment
	if !h.decode(w, r, &p) {
		return
	}
	if err := h.svc.AddRecurringPayment(r.Context(), &p); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) SetPaymentActive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.SetRecurringPaymentActive)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteRecurringPayment)
}

func (h *Handler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListInstallments(r.Context(), r.URL.Query().Get("all") != "true")
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(list))
}

func (h *Handler) CreateInstallment(w http.ResponseWriter, r *http.Request) {
	var in service.InstallmentInput
	if !h.decode(w, r, &in) {
		return
	}
	p, err := h.svc.AddInstallment(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type earlyPaymentRequest struct {
	Periods int `json:"periods"`
}

// EarlyPayment registers installments paid in advance
func (h *Handler) EarlyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	req := earlyPaymentRequest{Periods: 1}
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	p, err := h.svc.EarlyPayment(r.Context(), id, req.Periods)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GetInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	p, err := h.svc.GetInstallment(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) SetInstallmentActive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.SetInstallmentActive)
}

func (h *Handler) DeleteInstallment(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteInstallment)
}

type activeRequest struct {
	Active *bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, id int64, active bool) error) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	var req activeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Active == nil {
		h.fail(w, models.Invalid("active", "is required"))
		return
	}
	if err := set(r.Context(), id, *req.Active); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// orEmpty keeps empty lists encoding as [] rather than null
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
