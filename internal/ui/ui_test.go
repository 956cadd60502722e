package ui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifepanel/internal/core"
	"lifepanel/internal/session"
	pcore "lifepanel/pkg/core"
	"lifepanel/pkg/life"
)

func TestButtonsFollowRunState(t *testing.T) {
	paused := Buttons(false)
	require.Len(t, paused, 2)
	assert.Equal(t, "Generate Placements", paused[0].Label)
	assert.Equal(t, ActionGenerate, paused[0].Action)
	assert.Equal(t, "Start", paused[1].Label)
	assert.Less(t, paused[0].Rect.Max.X, paused[1].Rect.Min.X)

	running := Buttons(true)
	require.Len(t, running, 1)
	assert.Equal(t, "Pause", running[0].Label)
	assert.Equal(t, ActionPause, running[0].Action)

	for _, b := range append(paused, running...) {
		assert.GreaterOrEqual(t, b.Rect.Min.Y, 0)
		assert.LessOrEqual(t, b.Rect.Max.Y, PanelHeight)
		assert.LessOrEqual(t, b.Rect.Max.X, PanelWidth())
	}
}

func TestHitButton(t *testing.T) {
	bs := Buttons(false)
	start := bs[1].Rect

	a, ok := HitButton(bs, start.Min.X, start.Min.Y)
	assert.True(t, ok)
	assert.Equal(t, ActionStart, a)

	_, ok = HitButton(bs, start.Max.X, start.Min.Y)
	assert.False(t, ok, "max edge is exclusive")
	_, ok = HitButton(bs, 0, 0)
	assert.False(t, ok)
}

func TestCellAt(t *testing.T) {
	size := pcore.Size{W: life.Width, H: life.Height}

	x, y, ok := CellAt(0, 0, 24, size)
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y})

	x, y, ok = CellAt(24*29+23, 24*14+23, 24, size)
	assert.True(t, ok)
	assert.Equal(t, [2]int{29, 14}, [2]int{x, y})

	_, _, ok = CellAt(24*30, 0, 24, size)
	assert.False(t, ok)
	_, _, ok = CellAt(0, 24*15, 24, size)
	assert.False(t, ok, "clicks on the panel are not cells")
	_, _, ok = CellAt(-1, 0, 24, size)
	assert.False(t, ok)
	_, _, ok = CellAt(5, 5, 0, size)
	assert.False(t, ok)
}

func TestKeyAction(t *testing.T) {
	cases := map[rune]Action{
		' ':  ActionToggleRun,
		'g':  ActionGenerate,
		'N':  ActionStep,
		'c':  ActionClear,
		'q':  ActionQuit,
		0x03: ActionQuit,
		'x':  ActionNone,
	}
	for r, want := range cases {
		assert.Equal(t, want, KeyAction(r), "%q", r)
	}
}

func TestDispatch(t *testing.T) {
	p, _ := life.LookupPattern("blinker")
	ctrl := session.New(life.New(life.DefaultConfig(), 1),
		session.WithGrid(life.Centered(p, life.Width, life.Height)),
		session.WithTicker(func(time.Duration) core.Ticker { return core.NewManualTicker() }),
	)
	defer ctrl.Close()
	ctx := context.Background()

	require.NoError(t, Dispatch(ctx, ctrl, ActionStep))
	assert.Equal(t, uint64(1), ctrl.Generation())

	require.NoError(t, Dispatch(ctx, ctrl, ActionToggleRun))
	assert.Equal(t, session.Running, ctrl.State())
	assert.ErrorIs(t, Dispatch(ctx, ctrl, ActionGenerate), session.ErrRunning)
	require.NoError(t, Dispatch(ctx, ctrl, ActionToggleRun))
	assert.Equal(t, session.Paused, ctrl.State())

	require.NoError(t, Dispatch(ctx, ctrl, ActionClear))
	assert.Zero(t, ctrl.Grid().Population())
	require.NoError(t, Dispatch(ctx, ctrl, ActionGenerate))
	assert.Equal(t, uint64(0), ctrl.Generation())

	require.NoError(t, Dispatch(ctx, ctrl, ActionStart))
	require.NoError(t, Dispatch(ctx, ctrl, ActionPause))
	assert.Equal(t, session.Paused, ctrl.State())
	assert.NoError(t, Dispatch(ctx, ctrl, ActionQuit))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "generate", ActionGenerate.String())
	assert.Equal(t, "none", Action(99).String())
}
