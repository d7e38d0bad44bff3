package posts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renix-codex/posts/internal/models"
)

type fakeStore struct {
	mu    sync.Mutex
	items []models.Post
	seq   int
}

func (f *fakeStore) FindAll(ctx context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items == nil {
		return nil, nil
	}
	return append([]models.Post(nil), f.items...), nil
}

func (f *fakeStore) InsertOne(ctx context.Context, p models.Post) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = fmt.Sprintf("id-%d", f.seq)
	f.items = append(f.items, p)
	return p.ID, nil
}

type fakeStoreFail struct{}

func (fakeStoreFail) FindAll(ctx context.Context) ([]models.Post, error) {
	return nil, errors.New("db read failed")
}

func (fakeStoreFail) InsertOne(ctx context.Context, p models.Post) (string, error) {
	return "", errors.New("db write failed")
}

type fakeConn struct {
	store StorePort
	err   error
	calls int
}

func (f *fakeConn) EnsureConnected(ctx context.Context) (StorePort, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.store, nil
}

var fixedNow = func() time.Time { return time.Unix(1_720_000_000, 0) }

func TestService_Health(t *testing.T) {
	conn := &fakeConn{err: errors.New("never called")}
	svc := New(conn, fixedNow, nil)

	assert.Equal(t, HealthMessage, svc.Health())
	assert.Equal(t, svc.Health(), svc.Health())
	assert.Zero(t, conn.calls)
}

func TestService_Create_Success(t *testing.T) {
	store := &fakeStore{}
	svc := New(&fakeConn{store: store}, fixedNow, nil)

	got, err := svc.Create(context.Background(), models.CreatePostInput{Title: "Hi", Body: "World"})
	require.NoError(t, err)

	assert.Equal(t, "Hi", got.Title)
	assert.Equal(t, "World", got.Body)
	assert.Equal(t, "id-1", got.ID)
	assert.True(t, got.CreatedAt.Equal(fixedNow()))
	assert.Len(t, store.items, 1)
}

func TestService_Create_ValidationSkipsWrite(t *testing.T) {
	store := &fakeStore{}
	svc := New(&fakeConn{store: store}, fixedNow, nil)

	for _, in := range []models.CreatePostInput{{Title: ""}, {Title: "Hi"}, {Body: "World"}} {
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, store.items)
}

func TestService_Create_DBError(t *testing.T) {
	svc := New(&fakeConn{store: fakeStoreFail{}}, fixedNow, nil)

	_, err := svc.Create(context.Background(), models.CreatePostInput{Title: "Hi", Body: "World"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Create_ConnectionErrorBeatsValidation(t *testing.T) {
	connErr := errors.New("no address")
	svc := New(&fakeConn{err: connErr}, fixedNow, nil)

	_, err := svc.Create(context.Background(), models.CreatePostInput{})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	svc := New(&fakeConn{store: &fakeStore{}}, fixedNow, nil)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestService_List_ReturnsCreated(t *testing.T) {
	store := &fakeStore{}
	svc := New(&fakeConn{store: store}, fixedNow, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreatePostInput{Title: "T", Body: "B"})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Post{created}, items)
}

func TestService_List_DBError(t *testing.T) {
	svc := New(&fakeConn{store: fakeStoreFail{}}, fixedNow, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_List_ConnectionError(t *testing.T) {
	svc := New(&fakeConn{err: errors.New("unreachable")}, fixedNow, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
