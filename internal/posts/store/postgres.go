package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renix-codex/posts/internal/models"
)

// DB is the subset of pgxpool.Pool the store needs (pgxpool or pgxmock).
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore keeps each post as a JSONB document in a single table named after
// the collection. The database is the one named by the address.
type PGStore struct {
	db    DB
	table string
	close func()
}

var _ Backend = (*PGStore)(nil)

// document is what lands in the doc column; the id lives in its own column.
type document struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func DialPostgres(ctx context.Context, uri string, names Names) (Backend, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	s := NewPGStore(pool, names.Collection)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	s.close = pool.Close
	return s, nil
}

func NewPGStore(db DB, collection string) *PGStore {
	return &PGStore{db: db, table: pgx.Identifier{collection}.Sanitize()}
}

// Migrate creates the backing table if it does not exist.
func (s *PGStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  created_at TIMESTAMPTZ NOT NULL,
  doc JSONB NOT NULL
)`, s.table))
	if err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func (s *PGStore) InsertOne(ctx context.Context, p models.Post) (string, error) {
	raw, err := json.Marshal(document{Title: p.Title, Body: p.Body, CreatedAt: p.CreatedAt})
	if err != nil {
		return "", err
	}
	var id string
	err = s.db.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (created_at, doc) VALUES ($1, $2) RETURNING id::text`, s.table),
		p.CreatedAt, raw,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *PGStore) FindAll(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT id::text, doc FROM %s ORDER BY created_at, id`, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var d document
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode post %s: %w", id, err)
		}
		out = append(out, models.Post{Title: d.Title, Body: d.Body, CreatedAt: d.CreatedAt, ID: id})
	}
	return out, rows.Err()
}

func (s *PGStore) Close(context.Context) error {
	if s.close != nil {
		s.close()
	}
	return nil
}
