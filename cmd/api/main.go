package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/eventhub/eventhub-go/internal/config"
	"github.com/eventhub/eventhub-go/internal/handler"
	"github.com/eventhub/eventhub-go/internal/middleware"
	"github.com/eventhub/eventhub-go/internal/repository"
	"github.com/eventhub/eventhub-go/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)

	if envErr != nil {
		logger.Warn().Msg("no .env file found, using environment variables")
	}
	if cfg.InsecureJWTSecret {
		logger.Warn().Msg("JWT_SECRET not set, using insecure development default")
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := repository.Connect(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	db := client.Database(cfg.MongoDB)
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = userRepo.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("creating indexes failed")
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, logger)
	authHandler := handler.NewAuthHandler(authService)

	eventService := service.NewEventService(eventRepo, logger)
	eventHandler := handler.NewEventHandler(eventService)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/auth/register", authHandler.HandleRegister)
	r.Post("/api/v1/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret, userRepo))
		r.Get("/api/v1/auth/me", authHandler.HandleMe)

		r.Get("/api/v1/events", eventHandler.HandleList)
		r.Post("/api/v1/events", eventHandler.HandleCreate)
		r.Put("/api/v1/events/{id}", eventHandler.HandleUpdate)
		r.Delete("/api/v1/events/{id}", eventHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced shutdown")
		os.Exit(1)
	}

	if err := client.Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("database disconnect failed")
	}

	logger.Info().Msg("server stopped")
}
