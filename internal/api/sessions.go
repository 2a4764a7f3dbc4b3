// Package api exposes the analysis core over HTTP for dashboard consumers.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/conversight/conversight/internal/ingest"
	"github.com/conversight/conversight/internal/platform/observability"
	"github.com/conversight/conversight/internal/record"
)

// Session is one parsed upload held in memory for follow-up analyses.
type Session struct {
	ID        string
	Profile   record.Profile
	Table     record.Table
	CreatedAt time.Time
}

// SessionCache memoizes parses by content hash and platform, so repeated
// uploads of the same export within the TTL reuse the canonical table
// instead of re-parsing.
type SessionCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	byID   map[string]*Session
	byHash map[string]string
}

func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		ttl:    ttl,
		byID:   make(map[string]*Session),
		byHash: make(map[string]string),
	}
}

// GetOrParse returns the cached session for this content and platform, or
// parses the content and caches the result. The bool reports a cache hit.
func (c *SessionCache) GetOrParse(raw []byte, platform string) (*Session, bool, error) {
	key := contentKey(raw, platform)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()

	if id, ok := c.byHash[key]; ok {
		if sess, ok := c.byID[id]; ok {
			observability.SessionCacheLookups.WithLabelValues("hit").Inc()
			return sess, true, nil
		}
	}

	observability.SessionCacheLookups.WithLabelValues("miss").Inc()

	table, err := ingest.Parse(raw, platform)
	if err != nil {
		return nil, false, err
	}

	profile, _ := record.ProfileFor(platform)

	sess := &Session{
		ID:        uuid.NewString(),
		Profile:   profile,
		Table:     table,
		CreatedAt: time.Now(),
	}

	c.byID[sess.ID] = sess
	c.byHash[key] = sess.ID
	observability.SessionsActive.Set(float64(len(c.byID)))

	return sess, false, nil
}

// Get looks a session up by id.
func (c *SessionCache) Get(id string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()

	sess, ok := c.byID[id]

	return sess, ok
}

// EvictExpired drops sessions past the TTL. Lookups evict lazily already;
// this keeps an idle cache from holding parsed tables until the next request.
func (c *SessionCache) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()
}

func (c *SessionCache) evictExpiredLocked() {
	if c.ttl <= 0 {
		return
	}

	cutoff := time.Now().Add(-c.ttl)

	for id, sess := range c.byID {
		if sess.CreatedAt.Before(cutoff) {
			delete(c.byID, id)
		}
	}

	for key, id := range c.byHash {
		if _, ok := c.byID[id]; !ok {
			delete(c.byHash, key)
		}
	}

	observability.SessionsActive.Set(float64(len(c.byID)))
}

func contentKey(raw []byte, platform string) string {
	sum := sha256.Sum256(raw)

	return hex.EncodeToString(sum[:]) + ":" + platform
}
