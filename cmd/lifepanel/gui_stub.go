//go:build !ebiten

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the board in a desktop window (requires the ebiten build tag)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("the desktop window requires the ebiten build tag; rebuild with `go build -tags ebiten ./cmd/lifepanel`")
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
