package handlers

import (
	"net/http"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/models"
)

// MonitoringHandler serves the credit monitoring endpoints.
type MonitoringHandler struct {
	logger  *common.Logger
	service interfaces.CreditService
}

// NewMonitoringHandler creates a new monitoring handler.
func NewMonitoringHandler(logger *common.Logger, service interfaces.CreditService) *MonitoringHandler {
	return &MonitoringHandler{logger: common.OrSilent(logger), service: service}
}

type enableMonitoringRequest struct {
	UserID string `json:"user_id"`
}

// Enable handles POST /api/monitoring.
func (h *MonitoringHandler) Enable(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req enableMonitoringRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	handle, err := h.service.EnableMonitoring(r.Context(), req.UserID)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, handle)
}

// List handles GET /api/monitoring?user_id=.
func (h *MonitoringHandler) List(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	handles, err := h.service.ListMonitoring(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if handles == nil {
		handles = []models.MonitoringHandle{}
	}
	WriteJSON(w, http.StatusOK, handles)
}
