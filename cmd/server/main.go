package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/segyhp/loan-tracker/internal/cache"
	"github.com/segyhp/loan-tracker/internal/config"
	"github.com/segyhp/loan-tracker/internal/handler"
	"github.com/segyhp/loan-tracker/internal/jobs"
	"github.com/segyhp/loan-tracker/internal/repository"
	"github.com/segyhp/loan-tracker/internal/service"
	"github.com/segyhp/loan-tracker/pkg/logger"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.New(cfg.Logging.Logger())
	if err != nil {
		zap.NewExample().Fatal("failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// Amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.Database.AutoMigrate {
		if err := repository.RunMigrations(cfg.Database.DSN()); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("database migrations applied")
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatal("failed to initialize redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	loanCache := cache.NewLoanCache(redisClient, cfg.Redis.LoanCacheTTL)

	// Initialize service
	loanService := service.NewLoanService(userRepo, loanRepo, loanCache, cfg, log)
	loanHandler := handler.NewLoanHandler(loanService, log)
	healthHandler := handler.NewHealthHandler(cfg.Health.Timeout, map[string]handler.Check{
		"database": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	router := handler.NewRouter(loanHandler, healthHandler, log)

	scheduler := jobs.NewScheduler(cfg.GetSchedulerLocation(), log)
	if err := scheduler.AddPoolStats(cfg.Scheduler.StatsCron, db, redisClient); err != nil {
		log.Fatal("failed to schedule jobs", zap.Error(err))
	}
	scheduler.Start()

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop()

	log.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}), nil
}
