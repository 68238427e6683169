package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/errors"
)

// MemoryStore is a goroutine-safe in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]chartio.Definition
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]chartio.Definition)}
}

// Create stores a new definition under a generated ID.
func (s *MemoryStore) Create(_ context.Context, def *chartio.Definition) (*chartio.Definition, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	stored := *def
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.mu.Lock()
	s.charts[stored.ID] = stored
	s.mu.Unlock()
	return &stored, nil
}

// Get retrieves a definition by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*chartio.Definition, error) {
	s.mu.RLock()
	stored, ok := s.charts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return &stored, nil
}

// List returns all definitions ordered by creation time.
func (s *MemoryStore) List(_ context.Context) ([]*chartio.Definition, error) {
	s.mu.RLock()
	out := make([]*chartio.Definition, 0, len(s.charts))
	for _, stored := range s.charts {
		d := stored
		out = append(out, &d)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		if out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].ID < out[b].ID
		}
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored definition, keeping its creation time.
func (s *MemoryStore) Update(_ context.Context, def *chartio.Definition) (*chartio.Definition, error) {
	if def.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart ID is required for update")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.charts[def.ID]
	if !ok {
		return nil, notFound(def.ID)
	}
	stored := *def
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	s.charts[def.ID] = stored
	return &stored, nil
}

// Delete removes a definition.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return notFound(id)
	}
	delete(s.charts, id)
	return nil
}

// Close discards all definitions.
func (s *MemoryStore) Close(context.Context) error {
	s.mu.Lock()
	s.charts = make(map[string]chartio.Definition)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
