package ui

import (
	"context"

	"lifepanel/internal/session"
)

// Action is a user command issued from a control panel, a key or a click.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionPause
	// ActionToggleRun starts a paused board and pauses a running one.
	ActionToggleRun
	ActionGenerate
	ActionStep
	ActionClear
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionPause:
		return "pause"
	case ActionToggleRun:
		return "toggle-run"
	case ActionGenerate:
		return "generate"
	case ActionStep:
		return "step"
	case ActionClear:
		return "clear"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// Board is the controller surface driven by the front ends.
type Board interface {
	State() session.State
	Start(ctx context.Context) error
	Pause()
	Generate() error
	StepOnce() error
	Clear() error
}

var _ Board = (*session.Controller)(nil)

// Dispatch applies a to b. ActionNone and ActionQuit are left to the caller.
func Dispatch(ctx context.Context, b Board, a Action) error {
	switch a {
	case ActionStart:
		return b.Start(ctx)
	case ActionPause:
		b.Pause()
	case ActionToggleRun:
		if b.State() == session.Running {
			b.Pause()
			return nil
		}
		return b.Start(ctx)
	case ActionGenerate:
		return b.Generate()
	case ActionStep:
		return b.StepOnce()
	case ActionClear:
		return b.Clear()
	}
	return nil
}

// KeyAction maps a console key to an action.
func KeyAction(r rune) Action {
	switch r {
	case ' ':
		return ActionToggleRun
	case 'g', 'G':
		return ActionGenerate
	case 'n', 'N':
		return ActionStep
	case 'c', 'C':
		return ActionClear
	case 'q', 'Q', 0x03:
		return ActionQuit
	}
	return ActionNone
}
