package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/internhq/internhub-be/internal/models"
	"github.com/internhq/internhub-be/internal/services"
)

// TaskHandler handles HTTP requests related to tasks.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// TaskPayload defines the structure for task creation requests.
type TaskPayload struct {
	InternID    string    `json:"internId" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending completed overdue"`
}

// ListForIntern handles listing all tasks belonging to one intern.
func (h *TaskHandler) ListForIntern(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasksForIntern(chi.URLParam(r, "internID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles the request to get a single task by ID.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.GetTaskByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Create handles the request to create a new task for an intern.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	task, err := h.service.CreateTask(models.Task{
		InternID:    payload.InternID,
		Title:       payload.Title,
		Description: payload.Description,
		Deadline:    payload.Deadline,
		Status:      payload.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update handles the request to update an existing task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles the request to delete a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTask(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
