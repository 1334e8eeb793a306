package handlers

import (
	"net/http"

	"github.com/internhq/internhub-be/internal/models"
	"github.com/internhq/internhub-be/internal/services"
)

// DashboardHandler serves the dashboard aggregation endpoints.
type DashboardHandler struct {
	service services.AnalyticsServiceProvider
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service services.AnalyticsServiceProvider) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats returns the headline dashboard counters.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Departments returns the per-department intern breakdown.
func (h *DashboardHandler) Departments(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDepartmentStats()
	if err != nil {
		writeError(w, err)
		return
	}
	if stats == nil {
		stats = []models.DepartmentCount{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// RecentActivities returns the merged recent-activity feed.
func (h *DashboardHandler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetRecentActivities(10)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.ActivityItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// TopPerformers returns the top five active interns by completion rate.
func (h *DashboardHandler) TopPerformers(w http.ResponseWriter, r *http.Request) {
	performers, err := h.service.GetTopPerformers(5)
	if err != nil {
		writeError(w, err)
		return
	}
	if performers == nil {
		performers = []models.TopPerformer{}
	}
	writeJSON(w, http.StatusOK, performers)
}
