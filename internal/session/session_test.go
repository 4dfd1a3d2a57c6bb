package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutrisnap_gateway/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.Now
	m := NewManager(store, &config.Config{SessionTTL: time.Hour}, zap.NewNop())
	m.now = clock.Now
	return m, store, clock
}

func TestManager_CreateLookupDestroy(t *testing.T) {
	m, store, _ := newTestManager(t)
	ctx := context.Background()

	created, err := m.Create(ctx, "tok", map[string]interface{}{"_id": "u-1", "email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", created.UserID)

	got, err := m.Lookup(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "a@b.c", got.User["email"])

	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound, "raw token must not be a storage key")

	require.NoError(t, m.Destroy(ctx, "tok"))
	_, err = m.Lookup(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_CreateRejectsEmptyToken(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Create(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestManager_CorruptSessionIsCleared(t *testing.T) {
	m, store, _ := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, Key("tok"), []byte("{not json"), time.Hour))

	_, err := m.Lookup(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestManager_Expiry(t *testing.T) {
	m, store, clock := newTestManager(t)
	ctx := context.Background()
	_, err := m.Create(ctx, "tok", map[string]interface{}{"id": "u-1"})
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = m.Lookup(ctx, "tok")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = m.Lookup(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, store.SweepExpired())
}

type failingClearStore struct {
	*MemoryStore
}

func (failingClearStore) Clear(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestManager_ExpiredSessionClearFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	clock := &fakeClock{t: time.Now()}
	m := NewManager(failingClearStore{NewMemoryStore()}, &config.Config{SessionTTL: time.Hour}, zap.New(core))
	m.now = clock.Now
	ctx := context.Background()

	_, err := m.Create(ctx, "tok", map[string]interface{}{"id": "u-1"})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = m.Lookup(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)

	entries := logs.FilterMessage("Failed to clear expired session").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "store unavailable", entries[0].ContextMap()["error"])
}

func TestMemoryStore_SweepExpired(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	store := NewMemoryStore()
	store.now = clock.Now
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, store.Set(ctx, "long", []byte("b"), time.Hour))
	require.NoError(t, store.Set(ctx, "forever", []byte("c"), 0))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, store.SweepExpired())
	assert.Equal(t, 2, store.Len())

	v, err := store.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "c", string(v))
}

func TestUserIDOf(t *testing.T) {
	assert.Equal(t, "a", UserIDOf(map[string]interface{}{"id": "a", "_id": "b"}))
	assert.Equal(t, "b", UserIDOf(map[string]interface{}{"_id": "b"}))
	assert.Equal(t, "42", UserIDOf(map[string]interface{}{"userId": float64(42)}))
	assert.Equal(t, "", UserIDOf(nil))
}
