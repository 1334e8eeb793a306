package models

import "time"

// Task status values. Transitions are free-form; any status may follow any
// other via an explicit update.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusOverdue   = "overdue"
)

// Task represents a unit of work assigned to an intern.
type Task struct {
	ID          string    `json:"id"`
	InternID    string    `json:"internId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status"`
}
