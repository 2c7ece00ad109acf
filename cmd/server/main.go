package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mockly/interview/internal/config"
	"mockly/interview/internal/events"
	"mockly/interview/internal/handlers"
	"mockly/interview/internal/interview"
	"mockly/interview/internal/jobs"
	"mockly/interview/internal/llm"
	_ "mockly/interview/internal/llm/gemini"
	"mockly/interview/internal/metrics"
	"mockly/interview/internal/prompts"
	"mockly/interview/internal/questions"
	"mockly/interview/internal/routers"
	"mockly/interview/internal/scoring"
	"mockly/interview/internal/store"
	"mockly/interview/internal/store/mongo"
	"mockly/interview/internal/utils"
)

const serviceName = "interview"

func registerRoutes(router *chi.Mux, cfg *config.Config, interviewHandler *handlers.InterviewHandler, healthHandler *handlers.HealthHandler, logger *zap.Logger) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, cfg.JWTSecret, logger)
	router.Handle("/metrics", metrics.Handler())
}

// openStore returns the configured session store and a func releasing its connection.
func openStore(ctx context.Context, cfg *config.Config) (store.SessionStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongo.NewClient(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		s, err := mongo.NewStore(ctx, client, cfg.MongoCollection)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return s, func() { _ = client.Disconnect(context.Background()) }, nil

	case config.StorePostgres, config.StoreSQLite:
		open := store.OpenSQLite
		target := cfg.SQLitePath
		if cfg.StoreDriver == config.StorePostgres {
			open = store.OpenPostgres
			target = cfg.Postgres.DSN()
		}
		db, err := open(target)
		if err != nil {
			return nil, nil, err
		}
		s, err := store.NewGormStore(db)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return s, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func newPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (events.Publisher, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, scored events disabled")
		return events.NopPublisher{}, func() {}
	}
	publisher := events.NewRedisPublisher(cfg.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := publisher.Ping(pingCtx); err != nil {
		// go-redis reconnects on the next publish
		logger.Warn("redis unreachable at startup", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return publisher, func() { _ = publisher.Close() }
}

func main() {
	envErr := godotenv.Load()

	logger, err := utils.NewLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("Falling back to production logger", zap.Error(err))
	}
	defer logger.Sync()

	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("Failed to load .env file", zap.Error(envErr))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("store", cfg.StoreDriver))

	ctx := context.Background()

	sessionStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer closeStore()

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	generator := questions.NewGenerator(aiProvider, promptManager, logger)
	evaluator := scoring.NewLLMEvaluator(aiProvider, promptManager, logger)
	engine := interview.NewEngine(sessionStore, generator, evaluator, logger)

	publisher, closePublisher := newPublisher(ctx, cfg, logger)
	defer closePublisher()

	interviewHandler := handlers.NewInterviewHandler(engine, publisher, logger)
	healthHandler := handlers.NewHealthHandler(sessionStore, aiProvider, promptManager, cfg)

	exporterJob := jobs.NewTranscriptExporterJob(sessionStore, &jobs.ExporterConfig{
		Schedule:      cfg.ExportSchedule,
		ExportDir:     cfg.ExportDir,
		ExportEnabled: cfg.ExportEnabled,
	}, logger)
	if err := exporterJob.Start(); err != nil {
		logger.Error("Failed to start transcript exporter job", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware(serviceName))

	registerRoutes(router, cfg, interviewHandler, healthHandler, logger)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	exporterJob.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
