package http

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"openway/internal/app"
	"openway/internal/config"
	"openway/internal/handler"
	"openway/internal/logger"
	"openway/internal/queue"
	"openway/internal/worker"
)

// Run starts the BFF server and blocks until SIGINT/SIGTERM.
func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Connect to stores
	stores, err := app.OpenStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open stores: %w", err)
	}
	defer stores.Close()

	services := app.NewServices(cfg, stores, true, log)

	// 3. Background workers
	if stores.Redis != nil && stores.Sentiment != nil {
		mgr := worker.NewManager(
			queue.NewConsumer(stores.Redis.Client, log),
			worker.NewHistoryHandler(stores.Sentiment, log),
			worker.ManagerConfig{WorkerCount: cfg.SentimentWorkers},
			log,
		)
		if err := mgr.Start(ctx); err != nil {
			return fmt.Errorf("failed to start workers: %w", err)
		}
		defer mgr.Stop()
	}

	// 4. Setup Server
	router := NewRouter(RouterConfig{
		ThemeHandler:     handler.NewThemeHandler(stores.Themes, log),
		ScreenHandler:    handler.NewScreenHandler(stores.Themes, log),
		WeatherHandler:   handler.NewWeatherHandler(services.Weather, log),
		SentimentHandler: handler.NewSentimentHandler(services.Sentiment, log),
		AccountHandler:   handler.NewAccountHandler(services.Accounts),
	})

	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.Bool("env_file", cfg.EnvFileLoaded))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, stdhttp.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
