package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifepanel/internal/adapters/redis"
	"lifepanel/internal/ports"
	"lifepanel/internal/ports/porttest"
	"lifepanel/pkg/life"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Ping(context.Background()))
	porttest.RunBoardStoreContract(t, store)
}

func TestRedisStore_StoresPlaintext(t *testing.T) {
	store, mr := newStore(t, redis.WithNamespace("test"))
	p, _ := life.LookupPattern("blinker")

	require.NoError(t, store.Save(context.Background(), "b", p))

	raw, err := mr.Get("test:board:b")
	require.NoError(t, err)
	assert.Equal(t, "OOO\n", raw)
	members, err := mr.Members("test:boards")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, members)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()
	p, _ := life.LookupPattern("block")

	require.NoError(t, store.Save(ctx, "short", p))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"short"}, names)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short")
	assert.ErrorIs(t, err, ports.ErrBoardNotFound)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	members, _ := mr.Members("lifepanel:boards")
	assert.Empty(t, members)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("lifepanel:board:bad", "xyz"))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrBoardNotFound)
}
