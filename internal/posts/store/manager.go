package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/renix-codex/posts/internal/logger"
	"github.com/renix-codex/posts/internal/posts"
)

const (
	// DefaultURIEnv is the environment variable holding the store address.
	DefaultURIEnv         = "MONGO_URI"
	DefaultDatabase       = "miniClassroom"
	DefaultCollection     = "posts"
	defaultConnectTimeout = 10 * time.Second
)

// Names selects the logical database and collection inside the store.
type Names struct {
	Database   string
	Collection string
}

// Backend is a live collection handle plus the connection behind it.
type Backend interface {
	posts.StorePort
	Close(ctx context.Context) error
}

// Dialer connects to uri and returns a ready collection handle.
type Dialer func(ctx context.Context, uri string, names Names) (Backend, error)

type connection struct {
	backend Backend
	scheme  string
}

// Manager owns the single shared store connection. It connects on the first
// EnsureConnected call and reuses the result afterwards.
type Manager struct {
	lookup  func() string
	dialers map[string]Dialer
	names   Names
	timeout time.Duration
	log     logger.Logger

	mu      sync.Mutex // guards closed and publishing to current
	closed  bool
	current atomic.Pointer[connection]
	group   singleflight.Group
}

var _ posts.ConnectorPort = (*Manager)(nil)

type Option func(*Manager)

// WithLookup overrides how the store address is read. The function is
// called on every connect attempt.
func WithLookup(fn func() string) Option {
	return func(m *Manager) { m.lookup = fn }
}

// WithDialer registers d for addresses starting with scheme://.
func WithDialer(scheme string, d Dialer) Option {
	return func(m *Manager) { m.dialers[strings.ToLower(scheme)] = d }
}

func WithConnectTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func WithNames(database, collection string) Option {
	return func(m *Manager) { m.names = Names{Database: database, Collection: collection} }
}

func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		lookup: func() string { return os.Getenv(DefaultURIEnv) },
		dialers: map[string]Dialer{
			"mongodb":     DialMongo,
			"mongodb+srv": DialMongo,
			"postgres":    DialPostgres,
			"postgresql":  DialPostgres,
		},
		names:   Names{Database: DefaultDatabase, Collection: DefaultCollection},
		timeout: defaultConnectTimeout,
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureConnected returns the shared collection handle, connecting first if
// needed. Concurrent first callers share a single connect attempt. A failed
// attempt is not cached; the next call tries again.
func (m *Manager) EnsureConnected(ctx context.Context) (posts.StorePort, error) {
	if c := m.current.Load(); c != nil {
		return c.backend, nil
	}
	v, err, _ := m.group.Do("connect", func() (any, error) {
		if c := m.current.Load(); c != nil {
			return c, nil
		}
		return m.connect(ctx)
	})
	if err != nil {
		return nil, err
	}
	c, ok := v.(*connection)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected connection value %T", ErrConnection, v)
	}
	return c.backend, nil
}

func (m *Manager) connect(ctx context.Context) (*connection, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: manager is closed", ErrConnection)
	}

	uri := strings.TrimSpace(m.lookup())
	if uri == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrConfiguration, DefaultURIEnv)
	}
	scheme, _, found := strings.Cut(uri, "://")
	if !found {
		return nil, fmt.Errorf("%w: store address has no scheme", ErrConfiguration)
	}
	scheme = strings.ToLower(scheme)
	dial, ok := m.dialers[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported store scheme %q", ErrConfiguration, scheme)
	}

	// Waiters share this attempt, so it must not die with the first caller.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	backend, err := dial(dctx, uri, m.names)
	if err != nil {
		m.log.Error("store connect failed", "scheme", scheme, "error", err)
		if errors.Is(err, ErrConfiguration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	c := &connection{backend: backend, scheme: scheme}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = backend.Close(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("%w: manager is closed", ErrConnection)
	}
	m.current.Store(c)
	m.mu.Unlock()
	m.log.Info("Connected to store",
		"scheme", scheme, "database", m.names.Database, "collection", m.names.Collection)
	return c, nil
}

// connected reports whether a connection has been established.
func (m *Manager) connected() bool {
	return m.current.Load() != nil
}

// Close tears down the connection, if any, and shuts the manager: later
// EnsureConnected calls fail, and a dial still in flight is closed as soon
// as it completes instead of being published.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	c := m.current.Swap(nil)
	m.mu.Unlock()
	if c == nil {
		return nil
	}
	if err := c.backend.Close(ctx); err != nil {
		return fmt.Errorf("store: close %s: %w", c.scheme, err)
	}
	m.log.Info("Store connection closed", "scheme", c.scheme)
	return nil
}
