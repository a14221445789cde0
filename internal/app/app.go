// Package app assembles stores and services from configuration. Both the
// BFF server and the device CLI build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"openway/internal/cache"
	"openway/internal/config"
	"openway/internal/database"
	"openway/internal/docstore"
	"openway/internal/queue"
	redisclient "openway/internal/redis"
	"openway/internal/repository"
	"openway/internal/service"
)

const upstreamTimeout = 30 * time.Second

// Stores holds every backend connection opened for a run.
type Stores struct {
	Themes    repository.ThemePreferenceRepository
	Sentiment repository.SentimentHistoryRepository // nil when no history store is configured
	Docstore  *docstore.Client
	DB        *sqlx.DB
	Redis     *redisclient.Client

	closers []func() error
}

// Close releases connections in reverse order of opening.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStores connects to the backends named in cfg. Redis is optional unless
// it is the theme backend; an unreachable optional Redis is logged and
// skipped.
func OpenStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	s := &Stores{}
	fail := func(err error) (*Stores, error) {
		s.Close()
		return nil, err
	}

	if cfg.DocstoreProjectID != "" {
		client, err := docstore.NewClient(docstore.Config{
			Endpoint:  cfg.DocstoreEndpoint,
			ProjectID: cfg.DocstoreProjectID,
			APIKey:    cfg.DocstoreAPIKey,
		}, log)
		if err != nil {
			return fail(fmt.Errorf("docstore client: %w", err))
		}
		s.Docstore = client
	}

	if cfg.HasPostgres() {
		db, err := database.Connect(ctx, cfg.PostgresDSN(), log)
		if err != nil {
			return fail(err)
		}
		s.DB = db
		s.closers = append(s.closers, db.Close)
		if err := database.EnsureSchema(ctx, db); err != nil {
			return fail(err)
		}
	}

	if cfg.RedisURL != "" {
		rdb, err := redisclient.Connect(ctx, cfg.RedisURL)
		if err != nil {
			if cfg.StoreBackend == config.BackendRedis {
				return fail(err)
			}
			log.Warn("redis unavailable, cache and stream disabled", zap.Error(err))
		} else {
			s.Redis = rdb
			s.closers = append(s.closers, rdb.Close)
		}
	}

	switch cfg.StoreBackend {
	case config.BackendDocstore:
		s.Themes = repository.NewDocstoreThemeRepository(s.Docstore, cfg.DocstoreDatabaseID, cfg.DocstoreThemeCollection)
	case config.BackendPostgres:
		s.Themes = repository.NewPostgresThemeRepository(s.DB)
	case config.BackendRedis:
		s.Themes = repository.NewRedisThemeRepository(s.Redis.Client)
	case config.BackendS3:
		client, err := repository.NewS3Client(ctx, repository.S3Options{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return fail(err)
		}
		s.Themes = repository.NewS3ThemeRepository(client, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return fail(fmt.Errorf("unknown store backend %q", cfg.StoreBackend))
	}

	switch {
	case s.Docstore != nil && cfg.DocstoreDatabaseID != "" && cfg.DocstoreSentimentCollection != "":
		s.Sentiment = repository.NewDocstoreSentimentRepository(s.Docstore, cfg.DocstoreDatabaseID, cfg.DocstoreSentimentCollection)
	case s.DB != nil:
		s.Sentiment = repository.NewPostgresSentimentRepository(s.DB)
	}

	log.Info("stores ready",
		zap.String("theme_backend", cfg.StoreBackend),
		zap.Bool("sentiment_history", s.Sentiment != nil),
		zap.Bool("redis", s.Redis != nil),
	)
	return s, nil
}

// Services are the application services built on top of Stores.
type Services struct {
	Weather   *service.WeatherService
	Sentiment *service.SentimentService
	Accounts  *service.AccountService
}

// NewServices wires the services. With publish set and Redis available,
// sentiment history goes through the stream for the worker to persist.
func NewServices(cfg *config.Config, stores *Stores, publish bool, log *zap.Logger) *Services {
	client := &http.Client{Timeout: upstreamTimeout}

	var wc cache.WeatherCache
	var pub queue.Publisher
	if stores.Redis != nil {
		wc = cache.NewWeatherCache(stores.Redis.Client, cfg.WeatherCacheTTL, log)
		if publish && stores.Sentiment != nil {
			pub = queue.NewPublisher(stores.Redis.Client, log)
		}
	}

	return &Services{
		Weather:   service.NewWeatherService(cfg.WeatherURL, client, wc, log),
		Sentiment: service.NewSentimentService(cfg.SentimentURL, cfg.SentimentToken, client, pub, stores.Sentiment, log),
		Accounts:  service.NewAccountService(),
	}
}
