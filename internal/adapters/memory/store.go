package memory

import (
	"context"
	"sort"
	"sync"

	"lifepanel/internal/ports"
	"lifepanel/pkg/life"
)

// Store implements ports.BoardStore in memory.
// Safe for concurrent use. Grids are immutable so they are stored as is.
type Store struct {
	data map[string]*life.Grid
	mu   sync.RWMutex
}

var _ ports.BoardStore = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]*life.Grid)}
}

// Save stores the board.
func (s *Store) Save(ctx context.Context, name string, g *life.Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = g
	return nil
}

// Load retrieves the board.
func (s *Store) Load(ctx context.Context, name string) (*life.Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.data[name]
	if !ok {
		return nil, ports.ErrBoardNotFound
	}
	return g, nil
}

// Delete removes the board.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored board names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
