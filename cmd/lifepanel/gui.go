//go:build ebiten

package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"lifepanel/internal/app"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the board in a desktop window",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(slog.LevelDebug)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ctrl, err := newController(log, nil)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		game := app.New(ctx, ctrl, cfg.Scale, log)
		ebiten.SetWindowTitle("lifepanel")
		ebiten.SetWindowSize(game.WindowSize())

		if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
