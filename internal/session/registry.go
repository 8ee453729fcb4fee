// Package session tracks the current document of each client session.
//
// Every session has a single slot. Uploading a new document replaces the
// previous one and deletes its file.
package session

import (
	"errors"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry maps session IDs to the path of their current document.
// It is safe for concurrent use; concurrent writes to one slot are
// last-write-wins.
type Registry struct {
	mu     sync.Mutex
	docs   map[string]string
	logger *zap.Logger
}

// NewRegistry creates an empty Registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{docs: make(map[string]string), logger: logger}
}

// NewID returns a fresh session ID.
func NewID() string {
	return uuid.NewString()
}

// Set makes path the current document of session id. A different document
// previously held by the slot is deleted from disk.
func (r *Registry) Set(id, path string) {
	r.mu.Lock()
	prev, had := r.docs[id]
	r.docs[id] = path
	r.mu.Unlock()

	if had && prev != path {
		r.remove(prev)
	}
}

// Get returns the current document of session id.
func (r *Registry) Get(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path, ok := r.docs[id]
	return path, ok
}

// Discard deletes the document at path and empties the slot of session id
// if it still refers to path. A slot that has since moved on to a newer
// upload is left alone.
func (r *Registry) Discard(id, path string) {
	r.mu.Lock()
	if cur, ok := r.docs[id]; ok && cur == path {
		delete(r.docs, id)
	}
	r.mu.Unlock()

	r.remove(path)
}

// Len returns the number of sessions holding a document.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func (r *Registry) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("failed to delete document", zap.String("path", path), zap.Error(err))
	}
}
