package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/export"
	"github.com/Dan9191/finance-tracker/internal/forecast"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	cfg *config.Config
	log *logrus.Logger
}

func NewHandler(svc *service.Service, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// Register mounts the API routes on r
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/balance", h.Balance).Methods("GET")
	r.HandleFunc("/projection", h.Projection).Methods("GET")
	r.HandleFunc("/projection/export", h.ExportProjection).Methods("GET")
	r.HandleFunc("/alerts", h.Alerts).Methods("GET")
	r.HandleFunc("/simulate", h.Simulate).Methods("POST")
	r.HandleFunc("/settings/starting-balance", h.SetStartingBalance).Methods("PUT")

	r.HandleFunc("/movements", h.ListMovements).Methods("GET")
	r.HandleFunc("/movements", h.CreateMovement).Methods("POST")
	r.HandleFunc("/movements/{id:[0-9]+}", h.DeleteMovement).Methods("DELETE")

	r.HandleFunc("/incomes", h.ListIncomes).Methods("GET")
	r.HandleFunc("/incomes", h.CreateIncome).Methods("POST")
	r.HandleFunc("/incomes/{id:[0-9]+}/active", h.SetIncomeActive).Methods("PATCH")
	r.HandleFunc("/incomes/{id:[0-9]+}", h.DeleteIncome).Methods("DELETE")

	r.HandleFunc("/payments", h.ListPayments).Methods("GET")
	r.HandleFunc("/payments", h.CreatePayment).Methods("POST")
	r.HandleFunc("/payments/{id:[0-9]+}/active", h.SetPaymentActive).Methods("PATCH")
	r.HandleFunc("/payments/{id:[0-9]+}", h.DeletePayment).Methods("DELETE")

	r.HandleFunc("/installments", h.ListInstallments).Methods("GET")
	r.HandleFunc("/installments", h.CreateInstallment).Methods("POST")
	r.HandleFunc("/installments/{id:[0-9]+}/early-payment", h.EarlyPayment).Methods("POST")
	r.HandleFunc("/installments/{id:[0-9]+}", h.GetInstallment).Methods("GET")
	r.HandleFunc("/installments/{id:[0-9]+}/active", h.SetInstallmentActive).Methods("PATCH")
	r.HandleFunc("/installments/{id:[0-9]+}", h.DeleteInstallment).Methods("DELETE")

	r.HandleFunc("/cards", h.ListCards).Methods("GET")
	r.HandleFunc("/cards", h.CreateCard).Methods("POST")
	r.HandleFunc("/cards/{id:[0-9]+}/active", h.SetCardActive).Methods("PATCH")
	r.HandleFunc("/cards/{id:[0-9]+}", h.DeleteCard).Methods("DELETE")
	r.HandleFunc("/cards/{id:[0-9]+}/charges", h.ListCardCharges).Methods("GET")
	r.HandleFunc("/cards/{id:[0-9]+}/charges", h.CreateCardCharge).Methods("POST")
	r.HandleFunc("/card-charges/{id:[0-9]+}", h.DeleteCardCharge).Methods("DELETE")
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Balance returns the current balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.CurrentBalance(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) projection(r *http.Request) ([]models.PeriodProjection, error) {
	months, err := intParam(r, "months", h.cfg.ProjectionMonths)
	if err != nil {
		return nil, err
	}
	granularity := models.Granularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = models.Monthly
	}
	return h.svc.Projection(r.Context(), months, granularity)
}

// Projection returns the projected balance per period
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	out, err := h.projection(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(out))
}

// ExportProjection returns the projection as an xlsx workbook
func (h *Handler) ExportProjection(w http.ResponseWriter, r *http.Request) {
	out, err := h.projection(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	f, err := export.ProjectionWorkbook(out)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("projection_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(w); err != nil {
		h.log.Errorf("Failed to write projection workbook: %v", err)
	}
}

// Alerts returns upcoming payments. An explicit lookahead applies one window
// to every commitment, otherwise the configured window is used.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	opts := h.svc.DefaultAlertOptions()
	if r.URL.Query().Has("lookahead") {
		days, err := intParam(r, "lookahead", 0)
		if err != nil {
			h.fail(w, err)
			return
		}
		opts = forecast.AlertOptions{LookaheadDays: days}
	}
	alerts, err := h.svc.Alerts(r.Context(), opts)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(alerts))
}

type simulateRequest struct {
	Price        float64 `json:"price"`
	Installments int     `json:"installments"`
}

// Simulate runs a what-if installment purchase
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.Simulate(r.Context(), req.Price, req.Installments)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type balanceRequest struct {
	StartingBalance *float64 `json:"starting_balance"`
}

// SetStartingBalance updates the starting balance
func (h *Handler) SetStartingBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.StartingBalance == nil {
		h.fail(w, models.Invalid("starting_balance", "is required"))
		return
	}
	if err := h.svc.SetStartingBalance(r.Context(), *req.StartingBalance); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// fail maps service errors to HTTP statuses
func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	default:
		h.log.Errorf("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.Invalid(name, "must be an integer")
	}
	return v, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, models.Invalid("id", "must be an integer")
	}
	return id, nil
}
