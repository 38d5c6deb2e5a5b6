package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/config"
	dbRedis "github.com/askshelf/askshelf/internal/db/redis"
	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/lexicon"
	logpkg "github.com/askshelf/askshelf/internal/logger"
	"github.com/askshelf/askshelf/internal/metrics"
	catalogrepo "github.com/askshelf/askshelf/internal/repository/catalog"
	"github.com/askshelf/askshelf/internal/repository/embcache"
	chiTransport "github.com/askshelf/askshelf/internal/transport/chi"
	openaiTransport "github.com/askshelf/askshelf/internal/transport/openai"
	"github.com/askshelf/askshelf/internal/usecase/ask"
	"github.com/askshelf/askshelf/internal/usecase/backfill"
	embeddinguc "github.com/askshelf/askshelf/internal/usecase/embedding"
	healthuc "github.com/askshelf/askshelf/internal/usecase/health"
	"github.com/askshelf/askshelf/internal/usecase/rebuild"
	"github.com/askshelf/askshelf/internal/usecase/retrieval"
	"github.com/askshelf/askshelf/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting askshelf API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterQueryMetrics()

	// Build embedder chain — composition root.
	// Item texts are embedded without the query instruction; the instruction
	// decorator is applied only on the query side, outermost so cache keys
	// include it.
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	cached := embcache.New(
		base, store, cfg.Storage.KeyPrefix,
		time.Duration(cfg.Embedding.CacheTTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal, logger,
	)
	itemEmbedder := embeddinguc.NewInstrumentedEmbedder(
		cached, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)

	var queryEmbedder domain.Embedder = itemEmbedder
	if cfg.Embedding.QueryInstruction != "" {
		queryEmbedder = domain.NewInstructionEmbedder(itemEmbedder, cfg.Embedding.QueryInstruction)
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	var renderer domain.Renderer
	if !cfg.Renderer.Disabled {
		renderer = openaiTransport.NewRenderer(&openaiTransport.RendererConfig{
			APIKey:    cfg.Renderer.APIKey,
			BaseURL:   cfg.Renderer.BaseURL,
			Model:     cfg.Renderer.Model,
			MaxTokens: cfg.Renderer.MaxTokens,
			Logger:    logger,
		})
	}

	catalog := catalogrepo.New(store, cfg.Storage.KeyPrefix)
	if err := catalog.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure lexical index", zap.Error(err))
	}

	// Seed the lexicon from the current snapshot, then run the full rebuild
	// (embedding backfill + fresh lexicon). A failed backfill only costs
	// semantic scoring until the next /rebuild.
	all, err := catalog.All(ctx)
	if err != nil {
		logger.Fatal("Failed to load catalog snapshot", zap.Error(err))
	}
	lexicons := lexicon.NewHolder(lexicon.Build(all))
	logger.Info("Lexicon built", zap.Int("items", len(all)))

	backfillSvc := backfill.New(catalog, itemEmbedder, cfg.Embedding.Model, cfg.Embedding.Dimensions, logger)
	rebuildSvc := rebuild.New(catalog, backfillSvc, lexicons, logger)
	if _, err := rebuildSvc.Rebuild(ctx); err != nil {
		logger.Warn("Startup rebuild failed; semantic scoring degraded until next rebuild", zap.Error(err))
	}

	retrievalSvc := retrieval.New(catalog, queryEmbedder, lexicons, nil, retrieval.Params{
		Model:        cfg.Embedding.Model,
		Dimensions:   cfg.Embedding.Dimensions,
		TopN:         cfg.Search.TopN,
		SemanticCap:  cfg.Search.SemanticCap,
		LexicalLimit: cfg.Search.LexicalLimit,
	}, logger)
	askSvc := ask.New(retrievalSvc, catalog, lexicons, renderer, logger)
	healthSvc := healthuc.New(store, base)

	server := chiTransport.NewServer(askSvc, catalog, rebuildSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
