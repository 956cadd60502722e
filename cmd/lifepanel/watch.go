package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lifepanel/internal/tty"
)

var watchRun bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Play the board in the terminal",
	Long:  `Renders the board in the terminal. Keys: space start/pause, g generate, n step, c clear, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Log lines would tear the frame, so only warnings and errors are shown.
		log, err := newLogger(slog.LevelWarn)
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

		opts := []tty.Option{tty.WithLogger(log)}
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			state, err := term.MakeRaw(fd)
			if err != nil {
				return errors.Wrap(err, "raw mode")
			}
			defer term.Restore(fd, state)
			opts = append(opts, tty.WithNewline("\r\n"))
		}

		if watchRun {
			if err := ctrl.Start(ctx); err != nil {
				return err
			}
		}
		console := tty.New(ctrl, os.Stdout, termenv.EnvColorProfile(), opts...)
		return console.Run(ctx, os.Stdin)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchRun, "run", false, "start the board immediately")
}
