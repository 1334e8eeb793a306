package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/internhq/internhub-be/internal/auth"
	"github.com/internhq/internhub-be/internal/models"
	"github.com/internhq/internhub-be/internal/services"
	"github.com/rs/zerolog/log"
)

const maxAvatarSize = 2 << 20 // 2MB

// UserHandler handles HTTP requests for authentication and user management.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles new user registration. A successful registration issues a
// token so the client is logged in immediately.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	user, err := h.service.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles user authentication and token generation. The identifier may
// be a username or an email; the body may be JSON or a password form.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var identifier, password string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		identifier = r.FormValue("username")
		password = r.FormValue("password")
	} else {
		var payload struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		identifier = payload.Username
		password = payload.Password
	}

	user, err := h.service.Authenticate(identifier, password)
	if err != nil {
		log.Warn().Err(err).Str("identifier", identifier).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetAll handles retrieving every user account.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles the permanent deletion of a user account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func claimsFrom(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims)
	return claims, ok
}

// GetProfile retrieves the currently authenticated user.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateProfile(claims.UserID, update)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to update profile")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UploadAvatar stores an avatar image for the authenticated user. Only
// images up to 2MB are accepted.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		writeError(w, fmt.Errorf("%w: file exceeds the 2MB limit", models.ErrValidation))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, fmt.Errorf("%w: avatar file is required", models.ErrValidation))
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		writeError(w, fmt.Errorf("%w: avatar must be an image", models.ErrValidation))
		return
	}

	user, err := h.service.SaveAvatar(claims.UserID, header.Filename, file)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to save avatar")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
