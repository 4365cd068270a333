package handlers

import (
	"net/http"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/models"
)

// DisputeHandler serves dispute submission and status endpoints.
type DisputeHandler struct {
	logger  *common.Logger
	service interfaces.CreditService
}

// NewDisputeHandler creates a new dispute handler.
func NewDisputeHandler(logger *common.Logger, service interfaces.CreditService) *DisputeHandler {
	return &DisputeHandler{logger: common.OrSilent(logger), service: service}
}

// Submit handles POST /api/disputes.
func (h *DisputeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.SubmitDisputeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	resp, err := h.service.SubmitDispute(r.Context(), req)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/disputes?user_id=.
func (h *DisputeHandler) List(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	records, err := h.service.ListDisputes(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if records == nil {
		records = []models.DisputeRecord{}
	}
	WriteJSON(w, http.StatusOK, records)
}

// Status handles GET /api/disputes/{id}.
func (h *DisputeHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	view, err := h.service.DisputeStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}
