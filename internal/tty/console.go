// Package tty drives a board from a terminal: keys on stdin, frames on stdout.
package tty

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"

	"lifepanel/internal/logging"
	"lifepanel/internal/render"
	"lifepanel/internal/session"
	"lifepanel/internal/ui"
)

const help = "space start/pause  g generate  n step  c clear  q quit"

// Board is the controller surface used by the console.
type Board interface {
	ui.Board
	Subscribe() (<-chan session.Snapshot, func())
}

// Console renders board snapshots to a terminal and maps keys to actions.
type Console struct {
	board Board
	out   *termenv.Output
	term  *render.Terminal
	log   *slog.Logger

	lastErr error
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger for dispatch failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

// WithNewline sets the line terminator, "\r\n" for raw-mode terminals.
func WithNewline(nl string) Option {
	return func(c *Console) { c.term.Newline = nl }
}

// New creates a console writing to w with colour profile p.
func New(board Board, w io.Writer, p termenv.Profile, opts ...Option) *Console {
	c := &Console{
		board: board,
		out:   termenv.NewOutput(w, termenv.WithProfile(p)),
		term:  render.NewTerminal(p),
		log:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run redraws on every board change and applies keys read from in until q
// is pressed, in reaches EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	snaps, unsubscribe := c.board.Subscribe()
	defer unsubscribe()

	keys := make(chan rune)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		r := bufio.NewReader(in)
		for {
			k, _, err := r.ReadRune()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case keys <- k:
			case <-stop:
				return
			}
		}
	}()

	c.out.HideCursor()
	defer c.out.ShowCursor()

	last, ok := <-snaps
	if !ok {
		return session.ErrClosed
	}
	c.draw(last)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "read keys")
		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			last = snap
			c.draw(last)
		case k := <-keys:
			a := ui.KeyAction(k)
			if a == ui.ActionQuit {
				return nil
			}
			if a == ui.ActionNone {
				continue
			}
			c.lastErr = ui.Dispatch(ctx, c.board, a)
			if c.lastErr != nil {
				c.log.Debug("action rejected", "action", a.String(), "error", c.lastErr)
				c.draw(last)
			}
		}
	}
}

func (c *Console) draw(snap session.Snapshot) {
	status := fmt.Sprintf("%s  gen %d  pop %d  |  %s",
		snap.State, snap.Generation, snap.Grid.Population(), help)
	if c.lastErr != nil {
		status += c.term.Newline + c.lastErr.Error()
	}
	c.out.ClearScreen()
	fmt.Fprint(c.out, c.term.Frame(snap.Grid, status))
}
