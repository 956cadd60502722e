package porttest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifepanel/internal/ports"
	"lifepanel/pkg/life"
)

// RunBoardStoreContract verifies that store behaves like a ports.BoardStore.
// The store must start empty.
func RunBoardStoreContract(t *testing.T, store ports.BoardStore) {
	t.Helper()
	ctx := context.Background()

	glider, _ := life.LookupPattern("glider")
	first := life.Centered(glider, life.Width, life.Height)
	second := life.New(life.DefaultConfig(), 11).Randomize()

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, ports.ErrBoardNotFound)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "glider", first))
		got, err := store.Load(ctx, "glider")
		require.NoError(t, err)
		assert.True(t, got.Equal(first))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "glider", second))
		got, err := store.Load(ctx, "glider")
		require.NoError(t, err)
		assert.True(t, got.Equal(second))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "another", first))
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"another", "glider"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "glider"))
		require.NoError(t, store.Delete(ctx, "glider"))
		_, err := store.Load(ctx, "glider")
		assert.ErrorIs(t, err, ports.ErrBoardNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"another"}, names)
	})
}
