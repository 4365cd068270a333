package handlers

import (
	"net/http"
	"strconv"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/models"
)

// CreditHandler serves the credit pull, link flow, report and analysis endpoints.
type CreditHandler struct {
	logger  *common.Logger
	service interfaces.CreditService
}

// NewCreditHandler creates a new credit handler.
func NewCreditHandler(logger *common.Logger, service interfaces.CreditService) *CreditHandler {
	return &CreditHandler{logger: common.OrSilent(logger), service: service}
}

type linkTokenRequest struct {
	UserID string `json:"user_id"`
}

type linkExchangeRequest struct {
	PublicToken string `json:"public_token"`
}

// linkPullRequest is a PullCreditRequest plus the access token from a completed link flow.
type linkPullRequest struct {
	AccessToken string `json:"access_token"`
	models.PullCreditRequest
}

// Pull handles POST /api/credit/pull.
func (h *CreditHandler) Pull(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.PullCreditRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	result, err := h.service.PullReport(r.Context(), req)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// LinkToken handles POST /api/credit/link/token.
func (h *CreditHandler) LinkToken(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req linkTokenRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	token, err := h.service.CreateLinkToken(r.Context(), req.UserID)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, token)
}

// LinkExchange handles POST /api/credit/link/exchange.
func (h *CreditHandler) LinkExchange(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req linkExchangeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	exchange, err := h.service.ExchangePublicToken(r.Context(), req.PublicToken)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, exchange)
}

// LinkPull handles POST /api/credit/link/pull.
func (h *CreditHandler) LinkPull(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req linkPullRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	result, err := h.service.PullLinkedReport(r.Context(), req.AccessToken, req.PullCreditRequest)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Pulls handles GET /api/credit/pulls?user_id=.
func (h *CreditHandler) Pulls(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	pulls, err := h.service.ListPulls(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if pulls == nil {
		pulls = []models.PullRecord{}
	}
	WriteJSON(w, http.StatusOK, pulls)
}

// PullRecord handles GET /api/credit/pulls/{id}.
func (h *CreditHandler) PullRecord(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	record, err := h.service.GetPull(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

// Reports handles GET /api/credit/reports?user_id=.
func (h *CreditHandler) Reports(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	reports, err := h.service.ListReports(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if reports == nil {
		reports = []models.CreditReport{}
	}
	WriteJSON(w, http.StatusOK, reports)
}

// Report handles GET /api/credit/reports/{id}.
func (h *CreditHandler) Report(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	report, err := h.service.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// Analysis handles GET /api/credit/reports/{id}/analysis. ?refresh=true forces re-analysis.
func (h *CreditHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	analysis, err := h.service.GetAnalysis(r.Context(), r.PathValue("id"), refresh)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, analysis)
}

// Analyze handles POST /api/credit/analyze with a full report in the body.
func (h *CreditHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var report models.CreditReport
	if err := DecodeJSON(r, &report); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, h.service.AnalyzeReport(report))
}
