package handler

import (
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// ListCards returns cards with their unpaid statements
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCards(r.Context(), r.URL.Query().Get("all") != "true")
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(list))
}

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var c models.CreditCard
	if !h.decode(w, r, &c) {
		return
	}
	if err := h.svc.AddCard(r.Context(), &c); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) SetCardActive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.SetCardActive)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteCard)
}

func (h *Handler) ListCardCharges(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	list, err := h.svc.ListCardCharges(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(list))
}

// CreateCardCharge records a purchase on the card named in the path
func (h *Handler) CreateCardCharge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	var ch models.CardCharge
	if !h.decode(w, r, &ch) {
		return
	}
	ch.CardID = id
	if err := h.svc.AddCardCharge(r.Context(), &ch); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ch)
}

func (h *Handler) DeleteCardCharge(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteCardCharge)
}
