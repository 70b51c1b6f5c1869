package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"devsync-backend/internal/services"
)

// ActivityHandler exposes the recent activity log.
type ActivityHandler struct {
	service services.ActivityServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service services.ActivityServiceProvider) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetRecent returns the most recent activity entries.
func (h *ActivityHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	entries, err := h.service.GetRecent(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load activity")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
