package handlers

import (
	"net/http"

	"github.com/bobmcallan/vire-credit/internal/common"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger    *common.Logger
	providers map[string]string
}

// NewHealthHandler creates a new health handler. primary and fallback name the
// configured providers; fallback may be empty.
func NewHealthHandler(logger *common.Logger, environment, primary, fallback string) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		providers: map[string]string{
			"environment": environment,
			"primary":     primary,
			"fallback":    fallback,
		},
	}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"providers": h.providers,
	})
}
