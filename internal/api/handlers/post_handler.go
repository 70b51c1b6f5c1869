package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"devsync-backend/internal/auth"
	"devsync-backend/internal/metrics"
	"devsync-backend/internal/services"
)

// PostHandler handles HTTP requests for the content feed.
type PostHandler struct {
	service services.PostServiceProvider
	metrics *metrics.Metrics
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider, m *metrics.Metrics) *PostHandler {
	return &PostHandler{service: service, metrics: m}
}

// CreatePayload defines the structure for post creation requests.
type CreatePayload struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

// Create stores a new post owned by the caller. Content is required;
// the trim check lives here, not in the service.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Content) == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	post, err := h.service.CreatePost(claims.UserID, payload.Content, payload.Image)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create post")
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PostsCreated.Inc()
	}
	writeJSON(w, http.StatusCreated, post)
}

// GetAll returns the full feed, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListFeed()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list feed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get returns one post with its joins.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		log.Warn().Err(err).Str("post_id", id).Msg("Failed to get post")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete removes a post. Only the owner may delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeletePost(claims.UserID, id); err != nil {
		log.Warn().Err(err).Str("post_id", id).Str("user_id", claims.UserID).Msg("Failed to delete post")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Post removed"})
}

// Like adds the caller to a post's like-set.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	likes, err := h.service.Like(claims.UserID, id)
	if err != nil {
		log.Warn().Err(err).Str("post_id", id).Str("user_id", claims.UserID).Msg("Failed to like post")
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.Likes.Inc()
	}
	writeJSON(w, http.StatusOK, likes)
}

// Unlike removes the caller from a post's like-set.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	likes, err := h.service.Unlike(claims.UserID, id)
	if err != nil {
		log.Warn().Err(err).Str("post_id", id).Str("user_id", claims.UserID).Msg("Failed to unlike post")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// CommentPayload defines the structure for comment requests.
type CommentPayload struct {
	Text string `json:"text"`
}

// AddComment prepends a comment authored by the caller and returns the
// full joined comment list.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload CommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	comments, err := h.service.AddComment(claims.UserID, id, payload.Text)
	if err != nil {
		log.Warn().Err(err).Str("post_id", id).Str("user_id", claims.UserID).Msg("Failed to add comment")
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CommentsPosted.Inc()
	}
	writeJSON(w, http.StatusOK, comments)
}

// DeleteComment removes one comment. Only the comment's author may
// delete it; the post's owner has no special rights here.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "commentId")
	comments, err := h.service.DeleteComment(claims.UserID, id, commentID)
	if err != nil {
		log.Warn().Err(err).Str("post_id", id).Str("comment_id", commentID).Msg("Failed to delete comment")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
