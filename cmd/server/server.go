package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"trade_bridge/config"
	"trade_bridge/database"
	"trade_bridge/internal/adaptor"
	httpDelivery "trade_bridge/internal/delivery/http"
	"trade_bridge/internal/exchange"
	"trade_bridge/internal/model"
	"trade_bridge/internal/repository"
	"trade_bridge/internal/threecommas"
	"trade_bridge/internal/usecase"
	"trade_bridge/pkg/connection"
)

const staticDir = "web/static"

func Run(cfg *config.Config) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDevelopment() {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	// Credential store
	credRepo, datastore, cleanup, err := buildCredentialStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}
	defer cleanup()

	seedCredentials(credRepo, cfg, logger)

	// Vendor clients with explicit timeouts; expiry surfaces as a vendor
	// failure, not a hung request.
	binanceClient := exchange.NewClient(
		cfg.Binance.BaseURL,
		&http.Client{Timeout: cfg.Binance.Timeout},
		logger,
	)
	botClient := threecommas.NewClient(
		cfg.ThreeCommas.BaseURL,
		cfg.ThreeCommas.APIKey,
		cfg.ThreeCommas.APISecret,
		&http.Client{Timeout: cfg.ThreeCommas.Timeout},
		logger,
	)

	// Use cases
	exchangeUseCase := usecase.NewExchangeUseCase(binanceClient, credRepo)
	botUseCase := usecase.NewBotUseCase(botClient)
	statusUseCase := usecase.NewStatusUseCase(datastore)

	// Router
	router := httpDelivery.NewRouter(
		exchangeUseCase,
		botUseCase,
		statusUseCase,
		cfg.CORS.AllowedOrigins,
		staticDir,
		cfg.IsDevelopment(),
		logger,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	/* Graceful shutdown */
	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-sigterm:
		logger.Info().Msg("shutting down server")
	}

	// Close websocket connections first (this stops the status tickers)
	router.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		logger.Info().Msg("server stopped gracefully")
	case <-ctx.Done():
		logger.Warn().Msg("server shutdown timed out, forcing exit")
	}

	return nil
}

// buildCredentialStore wires the configured driver. The returned datastore
// is nil for the memory driver; the status snapshot then reports
// datastoreConnected=false.
func buildCredentialStore(cfg *config.Config, logger zerolog.Logger) (adaptor.CredentialRepository, adaptor.Datastore, func(), error) {
	var encKey []byte
	if cfg.Credentials.EncryptionKey != "" {
		encKey = []byte(cfg.Credentials.EncryptionKey)
	}

	switch cfg.Credentials.Driver {
	case "sqlite":
		db, err := connection.NewSQLite(cfg.Credentials.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		repo, err := repository.NewCredentialSQLiteRepository(db, encKey)
		if err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		logger.Info().Str("driver", "sqlite").Str("dsn", cfg.Credentials.DSN).Msg("credential store ready")
		return repo, sqlDatastore{db: db}, func() { db.Close() }, nil

	case "mongo":
		client, err := connection.NewMongo(cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		repo, err := repository.NewCredentialMongoRepository(client.Database, encKey)
		if err != nil {
			client.Close()
			return nil, nil, nil, err
		}
		logger.Info().Str("driver", "mongo").Str("database", cfg.MongoDB.Database).Msg("credential store ready")
		return repo, client, func() { client.Close() }, nil

	default:
		logger.Info().Str("driver", "memory").Msg("credential store ready")
		return repository.NewCredentialMemoryRepository(), nil, func() {}, nil
	}
}

// seedCredentials stores an env-provided pair when the store is empty, so a
// deployment configured through the environment starts out connected.
func seedCredentials(repo adaptor.CredentialRepository, cfg *config.Config, logger zerolog.Logger) {
	pair := model.Credential{
		APIKey:    cfg.Binance.APIKey,
		APISecret: cfg.Binance.APISecret,
	}
	if !pair.IsComplete() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := repo.Get(ctx)
	if err != nil || existing != nil {
		return
	}
	if err := repo.Set(ctx, pair); err != nil {
		logger.Warn().Err(err).Msg("failed to seed exchange credentials")
		return
	}
	logger.Info().Msg("exchange credentials seeded from environment")
}

type sqlDatastore struct {
	db *sqlx.DB
}

func (d sqlDatastore) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}
