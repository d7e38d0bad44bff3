package api

import (
	"context"

	"github.com/renix-codex/posts/internal/models"
	"github.com/renix-codex/posts/internal/posts"
)

// API is the application-facing facade. All callers (HTTP, CLI) go through this.
type API struct {
	svc *posts.Service
}

func New(svc *posts.Service) *API {
	return &API{svc: svc}
}

// Health returns the fixed liveness payload.
func (a *API) Health() string {
	return a.svc.Health()
}

// ListPosts returns every stored post.
func (a *API) ListPosts(ctx context.Context) ([]models.Post, error) {
	return a.svc.List(ctx)
}

// CreatePost validates and stores a new post.
func (a *API) CreatePost(ctx context.Context, in models.CreatePostInput) (models.Post, error) {
	return a.svc.Create(ctx, in)
}
