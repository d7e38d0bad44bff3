package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/renix-codex/posts/internal/models"
	"github.com/renix-codex/posts/internal/posts"
)

// maxBodyBytes mirrors the 100kb default of common JSON body parsers.
const maxBodyBytes = 100 << 10

const (
	msgFetchFailed  = "Failed to fetch posts"
	msgCreateFailed = "Failed to create post"
	msgRequired     = "Title and body are required"
)

type errorBody struct {
	Message string `json:"message"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	items, err := s.api.ListPosts(r.Context())
	if err != nil {
		s.log.Error("Error fetching posts", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: msgFetchFailed})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in models.CreatePostInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		s.log.Debug("Rejecting unreadable post payload", "error", err)
		// An unreadable payload counts as empty. The service still connects
		// first, so a store outage reports 500 before validation does.
		in = models.CreatePostInput{}
	}

	p, err := s.api.CreatePost(r.Context(), in)
	switch {
	case errors.Is(err, posts.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: msgRequired})
	case err != nil:
		s.log.Error("Error creating post", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: msgCreateFailed})
	default:
		writeJSON(w, http.StatusCreated, p)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
