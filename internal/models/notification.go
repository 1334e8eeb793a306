package models

import "time"

// Notification priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification represents a system notice shown in the notification center.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "intern_created", "task_assigned"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}
