package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	httpAdapter "lifepanel/internal/adapters/http"
	"lifepanel/internal/adapters/memory"
	"lifepanel/internal/adapters/redis"
	"lifepanel/internal/ports"
)

var serveRun bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board over HTTP",
	Long:  `Exposes the board as a JSON API with saved boards and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(slog.LevelDebug)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		ctrl, err := newController(log, reg)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		var store ports.BoardStore = memory.NewStore()
		if cfg.RedisAddr != "" {
			rs := redis.New(cfg.RedisAddr, "", 0, redis.WithTTL(cfg.BoardTTL))
			defer rs.Close()
			if err := rs.Ping(ctx); err != nil {
				return err
			}
			store = rs
			log.Info("using redis board store", "addr", cfg.RedisAddr)
		}

		if serveRun {
			if err := ctrl.Start(ctx); err != nil {
				return err
			}
		}

		srv := &http.Server{
			Addr: cfg.Addr,
			Handler: httpAdapter.NewHandler(ctx, ctrl,
				httpAdapter.WithStore(store),
				httpAdapter.WithGatherer(reg),
				httpAdapter.WithLogger(log),
			),
			ReadHeaderTimeout: 5 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return errors.Wrap(err, "http server")
		case <-ctx.Done():
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRun, "run", false, "start the board immediately")
}
