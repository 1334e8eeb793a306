package handlers

import (
	"net/http"

	"github.com/internhq/internhub-be/internal/services"
)

// AnalyticsHandler serves the analytics document endpoint.
type AnalyticsHandler struct {
	service services.AnalyticsServiceProvider
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service services.AnalyticsServiceProvider) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Get returns the full analytics document.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetAnalytics(r.URL.Query().Get("timeRange"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
