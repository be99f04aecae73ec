// Package store persists submitted form values. A SubmissionStore is the
// natural thing to put behind a form's submit callback.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned when a submission id does not exist.
var ErrNotFound = errors.New("store: submission not found")

// Submission is one stored submission.
type Submission struct {
	ID          string
	FormID      string
	Values      map[string]any
	SubmittedAt time.Time
}

// SubmissionStore persists submitted form values.
type SubmissionStore interface {
	// Save stores the values of one submission and returns its id.
	Save(ctx context.Context, formID string, values map[string]any) (string, error)
}

// newID returns a random 128-bit hex identifier.
func newID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// Fatal on entropy failure - colliding ids overwrite submissions
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// MemoryStore keeps submissions in memory. Used by the demo server and
// in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[string]Submission
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[string]Submission)}
}

// Save implements SubmissionStore.
func (m *MemoryStore) Save(ctx context.Context, formID string, values map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}

	id := newID()
	m.mu.Lock()
	m.subs[id] = Submission{
		ID:          id,
		FormID:      formID,
		Values:      copied,
		SubmittedAt: time.Now().UTC(),
	}
	m.mu.Unlock()

	return id, nil
}

// Get returns a stored submission by id.
func (m *MemoryStore) Get(id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subs[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return sub, nil
}

// Len returns the number of stored submissions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}
