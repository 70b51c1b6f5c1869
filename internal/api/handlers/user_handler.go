package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"devsync-backend/internal/auth"
	"devsync-backend/internal/metrics"
	"devsync-backend/internal/models"
	"devsync-backend/internal/services"
)

// UserHandler handles HTTP requests for profiles and the connection graph.
type UserHandler struct {
	users   services.UserServiceProvider
	graph   services.GraphServiceProvider
	metrics *metrics.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, graph services.GraphServiceProvider, m *metrics.Metrics) *UserHandler {
	return &UserHandler{users: users, graph: graph, metrics: m}
}

// GetMe retrieves the authenticated user's own account.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// List returns every account except the caller's.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	users, err := h.users.ListOthers(claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get retrieves a user by id, with connections joined.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.users.GetUserByID(id)
	if err != nil {
		log.Warn().Err(err).Str("user_id", id).Msg("Failed to get user by ID")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile applies a partial update to the caller's own profile.
// Absent fields are left untouched; present fields overwrite.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.UpdateProfile(claims.UserID, update)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to update profile")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Connect creates a symmetric connection between the caller and the
// target account.
func (h *UserHandler) Connect(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	targetID := chi.URLParam(r, "id")
	connections, err := h.graph.Connect(claims.UserID, targetID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Str("target_id", targetID).Msg("Connect failed")
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.Connects.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Connected successfully",
		"connections": connections,
	})
}

// Disconnect removes the connection in both directions.
func (h *UserHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	targetID := chi.URLParam(r, "id")
	connections, err := h.graph.Disconnect(claims.UserID, targetID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Str("target_id", targetID).Msg("Disconnect failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Disconnected successfully",
		"connections": connections,
	})
}
