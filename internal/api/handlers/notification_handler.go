package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/internhq/internhub-be/internal/models"
	"github.com/internhq/internhub-be/internal/services"
)

// NotificationHandler handles HTTP requests for notifications.
type NotificationHandler struct {
	service services.NotificationServiceProvider
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service services.NotificationServiceProvider) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetAll retrieves the most recent notifications.
func (h *NotificationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.GetNotifications(50)
	if err != nil {
		writeError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

// UnreadCount returns the number of unread notifications.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadCount()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkRead(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllRead(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}
