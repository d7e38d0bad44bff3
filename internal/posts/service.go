package posts

import (
	"context"
	"fmt"
	"time"

	"github.com/renix-codex/posts/internal/logger"
	"github.com/renix-codex/posts/internal/models"
)

// HealthMessage is the fixed payload of the liveness check.
const HealthMessage = "HELLO FROM MONGO VERSION"

type Service struct {
	conn ConnectorPort
	now  func() time.Time
	log  logger.Logger
}

func New(conn ConnectorPort, now func() time.Time, log logger.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{conn: conn, now: now, log: log}
}

// Health never touches the store.
func (s *Service) Health() string {
	return HealthMessage
}

// List returns every post in the collection, in store order.
func (s *Service) List(ctx context.Context) ([]models.Post, error) {
	coll, err := s.conn.EnsureConnected(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	items, err := coll.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: find posts: %w", ErrInternal, err)
	}
	if items == nil {
		items = []models.Post{}
	}
	return items, nil
}

// Create validates in, stamps createdAt and inserts the post.
func (s *Service) Create(ctx context.Context, in models.CreatePostInput) (models.Post, error) {
	coll, err := s.conn.EnsureConnected(ctx)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if err := Validate(in); err != nil {
		return models.Post{}, err
	}
	p := NewPost(in, s.now)
	id, err := coll.InsertOne(ctx, p)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: insert post: %w", ErrInternal, err)
	}
	p.ID = id
	s.log.Debug("post created", "id", id)
	return p, nil
}
