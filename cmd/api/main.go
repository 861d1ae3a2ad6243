// Package main is the entry point for the API server.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/cache"
	"github.com/capitalize-ai/response-engine/internal/config"
	"github.com/capitalize-ai/response-engine/internal/corpus"
	"github.com/capitalize-ai/response-engine/internal/export"
	"github.com/capitalize-ai/response-engine/internal/flow"
	"github.com/capitalize-ai/response-engine/internal/handler"
	"github.com/capitalize-ai/response-engine/internal/learning"
	"github.com/capitalize-ai/response-engine/internal/middleware"
	natsclient "github.com/capitalize-ai/response-engine/internal/nats"
	"github.com/capitalize-ai/response-engine/internal/predict"
	"github.com/capitalize-ai/response-engine/internal/responder"
	"github.com/capitalize-ai/response-engine/internal/rules"
	"github.com/capitalize-ai/response-engine/internal/session"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting response engine")

	ctx := context.Background()

	// Initialize tracing if enabled
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "response-engine", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS
	natsClient, err := natsclient.Connect(ctx, natsclient.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}, log)
	if err != nil {
		log.Error("failed to connect to NATS", zap.Error(err))
		os.Exit(1)
	}
	defer natsClient.Close()

	// Ensure the escalation stream exists
	escalations := natsclient.NewEscalations(natsClient)
	if err := escalations.EnsureStream(ctx); err != nil {
		log.Error("failed to ensure escalation stream", zap.Error(err))
		os.Exit(1)
	}

	// Cache: Redis when configured, in-memory otherwise
	var cacheStore cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "respond")
		if err != nil {
			log.Error("failed to connect to redis", zap.Error(err))
			os.Exit(1)
		}
		defer redisCache.Close()
		cacheStore = redisCache
	} else {
		log.Warn("REDIS_ADDR not set, using in-memory cache")
		cacheStore = cache.NewMemory()
	}

	// Training repository: Postgres when configured, in-memory otherwise
	var repo corpus.Repository
	if cfg.PostgresDSN != "" {
		pgRepo, err := corpus.NewPostgresRepository(cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres", zap.Error(err))
			os.Exit(1)
		}
		repo = pgRepo
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory repository")
		repo = corpus.NewMemoryRepository()
	}
	defer repo.Close()

	// Prediction provider
	predictor, err := predict.New(predict.Provider(cfg.PredictProvider), predict.Options{
		Endpoint:        cfg.PredictEndpoint,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		Model:           cfg.PredictModel,
	}, log)
	if err != nil {
		log.Warn("failed to create predictor, prediction step disabled", zap.Error(err))
	}

	// Core components
	sessions := session.NewStore(cfg.SessionTTL)
	flows := flow.NewEngine(flow.AccountFlow())
	matcher := rules.NewMatcher(rules.DefaultRules())
	scorer := corpus.NewScorer(repo, cacheStore, log)
	manager := learning.NewManager(repo, cacheStore, escalations, cfg.EscalationRecipients, log)
	pipeline := responder.New(sessions, flows, matcher, scorer, repo, cacheStore, predictor, manager, log)

	// Knowledge export
	exporter := export.NewExporter(repo, cfg.ExportPath, log)
	exportCtx, cancelExport := context.WithCancel(ctx)
	defer cancelExport()
	exporter.Start(exportCtx, cfg.ExportInterval)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsClient)
	messageHandler := handler.NewMessageHandler(pipeline, log)
	feedbackHandler := handler.NewFeedbackHandler(manager, log)
	trainingHandler := handler.NewTrainingHandler(repo, manager, log)
	exportHandler := handler.NewExportHandler(exporter, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/messages", messageHandler.Handle)
		r.Post("/feedback", feedbackHandler.Submit)

		// Moderation surface
		r.Route("/training", func(r chi.Router) {
			r.Use(middleware.RequireScope("training:write"))
			r.Get("/", trainingHandler.List)
			r.Post("/", trainingHandler.Create)
			r.Put("/{id}", trainingHandler.Update)
		})

		r.With(middleware.RequireScope("training:write")).
			Post("/knowledge/export", exportHandler.Trigger)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
