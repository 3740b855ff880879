package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/lsat-prep/diagnostics/internal/assessments"
	"github.com/lsat-prep/diagnostics/internal/auth"
	"github.com/lsat-prep/diagnostics/internal/config"
	"github.com/lsat-prep/diagnostics/internal/database"
	"github.com/lsat-prep/diagnostics/internal/diagnostics"
	"github.com/lsat-prep/diagnostics/internal/logger"
	"github.com/lsat-prep/diagnostics/internal/middleware"
	"github.com/lsat-prep/diagnostics/internal/narrator"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Initialize services
	engine := diagnostics.NewEngine(cfg.Engine.Diagnostics(), diagnostics.DefaultPopulation())

	var narr assessments.Narrator
	n, err := narrator.FromConfig(cfg.LLM)
	switch {
	case err == nil:
		narr = n
	case errors.Is(err, narrator.ErrNarrationDisabled):
		log.Info("narration disabled")
	default:
		return fmt.Errorf("configure narrator: %w", err)
	}

	secret := []byte(cfg.Auth.JWTSecret)
	authHandler := auth.NewHandler(db, secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	service := assessments.NewService(engine, assessments.NewStore(db), narr, cfg.Engine.BatchConcurrency)
	assessmentHandler := assessments.NewHandler(service)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(secret))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	assessmentHandler.Routes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
