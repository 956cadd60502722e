package redis

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	backend "github.com/redis/go-redis/v9"

	"lifepanel/internal/ports"
	"lifepanel/pkg/life"
)

// Store implements ports.BoardStore using Redis. Boards are stored in
// plaintext form under <namespace>:board:<name>; names are tracked in the
// <namespace>:boards set.
type Store struct {
	client    *backend.Client
	namespace string
	ttl       time.Duration
}

var _ ports.BoardStore = (*Store)(nil)

type Option func(*Store)

// WithTTL sets the expiration for boards.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithNamespace sets the key namespace. The default is "lifepanel".
func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// New creates a Redis store connected to address.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client:    client,
		namespace: "lifepanel",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(name string) string {
	return s.namespace + ":board:" + name
}

func (s *Store) indexKey() string {
	return s.namespace + ":boards"
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx).Err(), "redis ping")
}

// Save stores the board.
func (s *Store) Save(ctx context.Context, name string, g *life.Grid) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(name), g.String(), s.ttl)
	pipe.SAdd(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "save board %q", name)
	}
	return nil
}

// Load retrieves the board.
func (s *Store) Load(ctx context.Context, name string) (*life.Grid, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ports.ErrBoardNotFound
		}
		return nil, errors.Wrapf(err, "load board %q", name)
	}
	g, err := life.ParseString(val)
	if err != nil {
		return nil, errors.Wrapf(err, "decode board %q", name)
	}
	return g, nil
}

// Delete removes the board.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "delete board %q", name)
	}
	return nil
}

// List returns stored board names. Names whose board has expired are
// removed from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list boards")
	}

	pipe := s.client.Pipeline()
	exists := make([]*backend.IntCmd, len(names))
	for i, name := range names {
		exists[i] = pipe.Exists(ctx, s.key(name))
	}
	if len(names) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, errors.Wrap(err, "check boards")
		}
	}

	live := make([]string, 0, len(names))
	var stale []any
	for i, name := range names {
		if exists[i].Val() == 0 {
			stale = append(stale, name)
			continue
		}
		live = append(live, name)
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, errors.Wrap(err, "prune expired boards")
		}
	}
	sort.Strings(live)
	return live, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
