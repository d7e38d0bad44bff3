package posts

import (
	"context"

	"github.com/renix-codex/posts/internal/models"
)

// StorePort is a handle to the posts collection.
type StorePort interface {
	FindAll(ctx context.Context) ([]models.Post, error)
	// InsertOne persists p and returns the id the store assigned to it.
	InsertOne(ctx context.Context, p models.Post) (string, error)
}

// ConnectorPort hands out the shared collection handle, connecting on first use.
type ConnectorPort interface {
	EnsureConnected(ctx context.Context) (StorePort, error)
}
