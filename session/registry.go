// Package session owns anonymous session identity: the in-memory registry,
// the derived owner-id namespace, and the lifecycle coordinator that expires
// idle sessions and cascades deletion of their durable records.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"strings"
	"sync"
	"time"
)

// Timeout is how long a session survives without activity. Fixed policy, not
// configuration.
const Timeout = 12 * time.Hour

// SweepInterval is how often the coordinator scans for expired sessions,
// independent of request traffic.
const SweepInterval = 5 * time.Minute

// ownerPrefix marks owner ids derived from anonymous sessions.
const ownerPrefix = "anonymous_"

// Session tracks one anonymous client. Sessions live in process memory only:
// a restart clears them all, which is acceptable because anonymous history is
// inherently ephemeral.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
}

// Registry is the single owner of the session table. Every read and write
// goes through its mutex; the request path and the lifecycle sweep are the
// only mutators.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewRegistry returns an empty registry using the wall clock.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Resolve returns a live session id for a request. A known, unexpired
// candidate is refreshed and reused; anything else (empty, unknown, expired)
// gets a freshly generated session.
func (r *Registry) Resolve(candidateID string) (id string, isNew bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[candidateID]; ok && now.Sub(s.LastActivity) < Timeout {
		s.LastActivity = now
		return s.ID, false
	}

	id = r.newIDLocked()
	r.sessions[id] = &Session{ID: id, CreatedAt: now, LastActivity: now}
	return id, true
}

// IsActive reports whether the session exists and has not idled past Timeout.
func (r *Registry) IsActive(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	return ok && r.now().Sub(s.LastActivity) < Timeout
}

// Remove deletes the session entry. Idempotent: removing an unknown id is a
// no-op.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Expired returns a snapshot of the session ids whose inactivity crossed
// Timeout. The sweep consumes this; a session refreshed after the snapshot is
// still deleted this round and simply recreated on its next request.
func (r *Registry) Expired() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var ids []string
	for id, s := range r.sessions {
		if now.Sub(s.LastActivity) >= Timeout {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// newIDLocked generates an unguessable session id: 32 bytes of crypto/rand
// entropy, base64 URL encoded. The caller must hold the mutex; on the
// vanishingly unlikely collision with a live entry we just draw again.
func (r *Registry) newIDLocked() string {
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Printf("ERROR: reading session id entropy: %v", err)
		}
		id := base64.URLEncoding.EncodeToString(b)
		if _, exists := r.sessions[id]; !exists {
			return id
		}
	}
}

// DeriveOwnerID maps a session id to the owner id scoping that anonymous
// client's durable records.
func DeriveOwnerID(sessionID string) string {
	return ownerPrefix + sessionID
}

// ExtractSessionID inverts DeriveOwnerID. The second return is false for any
// owner id outside the anonymous namespace (stable authenticated user ids).
func ExtractSessionID(ownerID string) (string, bool) {
	if !strings.HasPrefix(ownerID, ownerPrefix) {
		return "", false
	}
	return strings.TrimPrefix(ownerID, ownerPrefix), true
}
