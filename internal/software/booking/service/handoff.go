package service

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"zorp/internal/ports"
)

// handoffTTL bounds how long a confirmed booking waits to be previewed.
const handoffTTL = 10 * time.Minute

type handoffEntry struct {
	preview   ports.PreviewResult
	expiresAt time.Time
}

// HandoffStore carries confirmed booking details from the drawer to the
// preview screen. Tokens are claim-once: a second claim, a stale token,
// or a token that never existed all miss the same way, which the preview
// screen renders by bouncing back to the map.
type HandoffStore struct {
	mu      sync.Mutex
	entries map[string]handoffEntry

	// injected for tests
	now func() time.Time
}

// NewHandoffStore creates an empty hand-off store.
func NewHandoffStore() *HandoffStore {
	return &HandoffStore{
		entries: make(map[string]handoffEntry),
		now:     time.Now,
	}
}

// Put stores the preview under a fresh token and returns the token.
// Expired entries that were never claimed are reaped on the way in.
func (store *HandoffStore) Put(preview ports.PreviewResult) string {
	token := newHandoffToken()

	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	for stale, entry := range store.entries {
		if now.After(entry.expiresAt) {
			delete(store.entries, stale)
		}
	}

	store.entries[token] = handoffEntry{
		preview:   preview,
		expiresAt: now.Add(handoffTTL),
	}

	return token
}

// Claim removes and returns the preview for a token. Expired or unknown
// tokens report a miss.
func (store *HandoffStore) Claim(token string) (ports.PreviewResult, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[token]
	if !ok {
		return ports.PreviewResult{}, false
	}
	delete(store.entries, token)

	if store.now().After(entry.expiresAt) {
		return ports.PreviewResult{}, false
	}

	return entry.preview, true
}

func newHandoffToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
