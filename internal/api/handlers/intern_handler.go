package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/internhq/internhub-be/internal/models"
	"github.com/internhq/internhub-be/internal/services"
)

// InternHandler handles HTTP requests related to interns.
type InternHandler struct {
	service services.InternServiceProvider
}

// NewInternHandler creates a new InternHandler.
func NewInternHandler(service services.InternServiceProvider) *InternHandler {
	return &InternHandler{service: service}
}

// InternPayload defines the structure for intern creation requests.
type InternPayload struct {
	FullName   string     `json:"fullName" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone"`
	Department string     `json:"department" validate:"required"`
	Position   string     `json:"position"`
	University string     `json:"university"`
	Skills     []string   `json:"skills"`
	Status     string     `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinDate   *time.Time `json:"joinDate"`
}

// List handles the paginated intern listing with search and department filter.
func (h *InternHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	interns, total, err := h.service.ListInterns(page, limit,
		r.URL.Query().Get("search"), r.URL.Query().Get("department"))
	if err != nil {
		writeError(w, err)
		return
	}
	if interns == nil {
		interns = []models.Intern{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"interns": interns,
		"total":   total,
	})
}

// Get handles the request to get a single intern by ID.
func (h *InternHandler) Get(w http.ResponseWriter, r *http.Request) {
	intern, err := h.service.GetInternByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intern)
}

// Create handles the request to create a new intern.
func (h *InternHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload InternPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	intern := models.Intern{
		FullName:   payload.FullName,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Department: payload.Department,
		Position:   payload.Position,
		University: payload.University,
		Skills:     payload.Skills,
		Status:     payload.Status,
	}
	if payload.JoinDate != nil {
		intern.JoinDate = *payload.JoinDate
	}

	created, err := h.service.CreateIntern(intern)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing intern.
func (h *InternHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update models.InternUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	intern, err := h.service.UpdateIntern(chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intern)
}

// Delete handles the request to delete an intern and, by cascade, its tasks.
func (h *InternHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteIntern(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
