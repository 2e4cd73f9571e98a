package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_cache_hits_total",
		Help: "Session lookups served from the in-process cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_cache_misses_total",
		Help: "Session lookups that went to the session store.",
	})
)

// Manager issues, resolves and revokes session tokens.
//
// Resolved sessions are cached in-process for a short TTL, so a session
// revoked from another API instance may still resolve here until the cache
// entry expires.
type Manager struct {
	store     Store
	secretKey []byte
	ttl       time.Duration
	cache     *expirable.LRU[string, string]
}

// NewManager builds a Manager. A cacheSize of zero disables caching.
func NewManager(store Store, secretKey []byte, ttl time.Duration, cacheSize int, cacheTTL time.Duration) *Manager {
	m := &Manager{store: store, secretKey: secretKey, ttl: ttl}
	if cacheSize > 0 {
		m.cache = expirable.NewLRU[string, string](cacheSize, nil, cacheTTL)
	}
	return m
}

// newSessionID is a seam for tests.
var newSessionID = uuid.NewString

// Create opens a session for userID and returns its token.
func (m *Manager) Create(ctx context.Context, userID string) (string, error) {
	sid := newSessionID()

	token, err := auth.GenerateSessionToken(sid, userID, m.secretKey, m.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := m.store.Put(ctx, sid, userID, m.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve returns the user owning token. Unknown, forged, expired and
// revoked tokens all yield common.ErrorUnauthorized.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	sid, err := m.sessionID(token)
	if err != nil {
		return "", err
	}

	if m.cache != nil {
		if userID, ok := m.cache.Get(sid); ok {
			cacheHitsTotal.Inc()
			return userID, nil
		}
		cacheMissesTotal.Inc()
	}

	userID, err := m.store.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	if m.cache != nil {
		m.cache.Add(sid, userID)
	}
	return userID, nil
}

// Revoke ends the session behind token.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	sid, err := m.sessionID(token)
	if err != nil {
		return err
	}

	if m.cache != nil {
		m.cache.Remove(sid)
	}
	return m.store.Delete(ctx, sid)
}

func (m *Manager) sessionID(token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	claims, err := auth.ParseSessionToken(token, m.secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return claims.ID, nil
}
