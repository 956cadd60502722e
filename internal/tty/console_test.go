package tty

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifepanel/internal/core"
	"lifepanel/internal/session"
	"lifepanel/pkg/life"
)

func newBoard(t *testing.T) *session.Controller {
	t.Helper()
	p, _ := life.LookupPattern("blinker")
	c := session.New(life.New(life.DefaultConfig(), 1),
		session.WithGrid(life.Centered(p, life.Width, life.Height)),
		session.WithTicker(func(time.Duration) core.Ticker { return core.NewManualTicker() }),
	)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestConsoleStepsAndQuits(t *testing.T) {
	board := newBoard(t)
	var out bytes.Buffer
	console := New(board, &out, termenv.Ascii)

	require.NoError(t, console.Run(context.Background(), strings.NewReader("nnq")))
	assert.Equal(t, uint64(2), board.Generation())
	assert.Contains(t, out.String(), ".............OOO..............\n")
	assert.Contains(t, out.String(), "paused  gen 0  pop 3")
}

func TestConsoleStopsAtEOF(t *testing.T) {
	board := newBoard(t)
	var out bytes.Buffer

	require.NoError(t, New(board, &out, termenv.Ascii).Run(context.Background(), strings.NewReader("c")))
	assert.Zero(t, board.Grid().Population())
}

func TestConsoleReportsRejectedAction(t *testing.T) {
	board := newBoard(t)
	require.NoError(t, board.Start(context.Background()))
	var out bytes.Buffer

	require.NoError(t, New(board, &out, termenv.Ascii, WithNewline("\r\n")).Run(context.Background(), strings.NewReader("gq")))
	assert.Contains(t, out.String(), session.ErrRunning.Error())
	assert.Contains(t, out.String(), "\r\n")
	assert.Equal(t, session.Running, board.State())
}

func TestConsoleToggleRun(t *testing.T) {
	board := newBoard(t)
	var out bytes.Buffer

	require.NoError(t, New(board, &out, termenv.Ascii).Run(context.Background(), strings.NewReader(" q")))
	assert.Equal(t, session.Running, board.State())
}

func TestConsoleContextCancel(t *testing.T) {
	board := newBoard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	assert.NoError(t, New(board, &out, termenv.Ascii).Run(ctx, blockingReader{}))
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }
