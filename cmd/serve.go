package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"signature-explorer/cache"
	"signature-explorer/database"
	"signature-explorer/handlers"
	"signature-explorer/logging"
	"signature-explorer/openchain"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions, addr string) error {
	cfg := opts.cfg
	if addr != "" {
		cfg.ListenAddr = addr
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stats, err := cache.NewStats(cfg.StatsCacheTTL)
	if err != nil {
		return err
	}
	defer stats.Close()

	var history *database.History
	if cfg.DatabasePath != "" {
		if err := database.InitDB(cfg.DatabasePath); err != nil {
			return err
		}
		history = database.NewHistory(database.GetDB())
		defer history.Close()
		logger.Info("import history enabled", zap.String("path", cfg.DatabasePath))
	}

	client := openchain.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.UpstreamTimeout}, logger.Named("openchain"))

	gin.SetMode(cfg.GinMode)
	h := handlers.New(handlers.Options{
		Client:      client,
		Stats:       stats,
		History:     history,
		Logger:      logger,
		ResultLimit: cfg.ResultLimit,
	})
	router := handlers.NewRouter(h, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting signature explorer",
			zap.String("addr", cfg.ListenAddr),
			zap.String("upstream", client.BaseURL()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
