package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dictioquiz/internal/config"
	"dictioquiz/internal/domain"
	"dictioquiz/internal/handler"
	"dictioquiz/internal/middleware"
	"dictioquiz/internal/repository"
	"dictioquiz/internal/repository/boltdb"
	"dictioquiz/internal/repository/jsonfile"
	"dictioquiz/internal/repository/memory"
	"dictioquiz/internal/repository/postgres"
	"dictioquiz/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// storage bundles the repositories of the selected driver with its cleanup
type storage struct {
	words repository.WordRepository
	users repository.UserRepository
	close func() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting DictioQuiz Bot", zap.String("storage", cfg.Storage.Driver))

	store, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := store.close(); err != nil {
			logger.Error("Failed to close storage", zap.Error(err))
		}
	}()

	// Initialize services
	wordStore := service.NewWordStore(store.words, logger)
	if err := wordStore.Load(); err != nil {
		// An unreadable list must never be replaced by an empty one on the next save
		var readErr *domain.StorageReadError
		if errors.As(err, &readErr) {
			logger.Fatal("Word list is unreadable, refusing to start",
				zap.String("source", readErr.Source),
				zap.Error(readErr.Err),
			)
		}
		logger.Fatal("Failed to load word list", zap.Error(err))
	}

	quizEngine := service.NewQuizEngine(nil, logger)
	statsService := service.NewStatsService(wordStore, logger)
	authService := service.NewAuthService(store.users, cfg.BotPassword)

	if authService.Enabled() {
		logger.Info("Password gate enabled")
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler failed", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.AuthMiddleware(authService, logger))

	// Initialize handler
	h := handler.NewHandler(bot, wordStore, quizEngine, statsService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered", zap.Int("words", wordStore.Len()))

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// openStorage builds the repositories for the configured driver
func openStorage(cfg *config.Config, logger *zap.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		// Connect to database with retries
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info("Database connection established")

		// Run migrations
		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, err
		}

		return &storage{
			words: postgres.NewWordRepo(db),
			users: postgres.NewUserRepo(db),
			close: db.Close,
		}, nil

	case config.DriverBolt:
		repo, err := boltdb.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Bolt database opened", zap.String("path", cfg.Storage.BoltPath))

		return &storage{
			words: repo,
			users: memory.NewUserRepo(),
			close: repo.Close,
		}, nil

	default:
		logger.Info("Using word list file", zap.String("path", cfg.Storage.FilePath))
		return &storage{
			words: jsonfile.NewWordRepo(cfg.Storage.FilePath),
			users: memory.NewUserRepo(),
			close: func() error { return nil },
		}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
