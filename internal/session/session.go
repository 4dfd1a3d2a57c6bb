// File: internal/session/session.go
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutrisnap_gateway/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is the identity state created on login success and destroyed on logout.
type Session struct {
	ID        uuid.UUID              `json:"id"`
	UserID    string                 `json:"userId,omitempty"`
	User      map[string]interface{} `json:"user,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	ExpiresAt time.Time              `json:"expiresAt"`
}

// Manager owns the session lifecycle on top of a Store.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store Store, cfg *config.Config, logger *zap.Logger) *Manager {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logger.Named("SessionManager"),
		now:    time.Now,
	}
}

// Key derives the storage key for a bearer token; raw tokens never become keys.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

// Create stores a new session for token. Any previous session for the same token is replaced.
func (m *Manager) Create(ctx context.Context, token string, user map[string]interface{}) (*Session, error) {
	if token == "" {
		return nil, errors.New("session: empty token")
	}
	now := m.now()
	sess := &Session{
		ID:        uuid.New(),
		UserID:    UserIDOf(user),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session: encode: %w", err)
	}
	if err := m.store.Set(ctx, Key(token), raw, m.ttl); err != nil {
		return nil, fmt.Errorf("session: store: %w", err)
	}
	m.logger.Debug("Session created", zap.String("session_id", sess.ID.String()), zap.String("user_id", sess.UserID))
	return sess, nil
}

// Lookup resolves the session for token. A stored value that no longer decodes is cleared.
func (m *Manager) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	key := Key(token)
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		m.logger.Warn("Discarding corrupt session", zap.Error(err))
		if clearErr := m.store.Clear(ctx, key); clearErr != nil {
			m.logger.Error("Failed to clear corrupt session", zap.Error(clearErr))
		}
		return nil, ErrNotFound
	}
	if !sess.ExpiresAt.IsZero() && !m.now().Before(sess.ExpiresAt) {
		if clearErr := m.store.Clear(ctx, key); clearErr != nil {
			m.logger.Error("Failed to clear expired session", zap.Error(clearErr))
		}
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Destroy removes the session for token, if any.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Clear(ctx, Key(token))
}

// UserIDOf picks the user identifier out of an upstream user object.
func UserIDOf(user map[string]interface{}) string {
	for _, field := range []string{"id", "_id", "userId"} {
		switch v := user[field].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
