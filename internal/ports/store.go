package ports

import (
	"context"

	"github.com/pkg/errors"

	"lifepanel/pkg/life"
)

// ErrBoardNotFound is returned when a named board does not exist.
var ErrBoardNotFound = errors.New("board not found")

// BoardStore persists named boards.
type BoardStore interface {
	// Save stores g under name, replacing any previous board.
	Save(ctx context.Context, name string, g *life.Grid) error

	// Load returns the board stored under name.
	// Returns ErrBoardNotFound if it does not exist.
	Load(ctx context.Context, name string) (*life.Grid, error)

	// Delete removes the board. Deleting a missing board is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored board names in sorted order.
	List(ctx context.Context) ([]string, error)
}

// ValidName reports whether name can be used as a board name.
func ValidName(name string) bool {
	if name == "" || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
