package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"lifepanel/internal/config"
	"lifepanel/internal/logging"
	"lifepanel/internal/session"
	"lifepanel/pkg/life"
)

var (
	cfg     = config.Default()
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "lifepanel",
	Short: "Conway's Game of Life on a fixed board",
	Long: `lifepanel runs Conway's Game of Life on a bounded 30x15 board. Cells can be
toggled while the board is paused; a running board steps every 400ms.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Resolve(cmd.Flags(), cfgFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	cfg.Bind(rootCmd.PersistentFlags())
}

func newLogger(floor slog.Level) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if level < floor {
		level = floor
	}
	return logging.New(level), nil
}

// newController builds the board from the resolved configuration.
func newController(log *slog.Logger, reg prometheus.Registerer) (*session.Controller, error) {
	initial, err := cfg.InitialGrid()
	if err != nil {
		return nil, err
	}
	opts := []session.Option{
		session.WithLogger(log),
		session.WithInterval(cfg.Interval),
		session.WithGrid(initial),
	}
	if reg != nil {
		opts = append(opts, session.WithMetrics(session.NewMetrics(reg)))
	}
	return session.New(life.New(cfg.Life(), cfg.Seed), opts...), nil
}
