package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/projet-mariage/wedding-api/internal/auth"
	"github.com/projet-mariage/wedding-api/internal/chat"
	"github.com/projet-mariage/wedding-api/internal/config"
	"github.com/projet-mariage/wedding-api/internal/database"
	"github.com/projet-mariage/wedding-api/internal/handlers"
	"github.com/projet-mariage/wedding-api/internal/notifier"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Handlers
	var n notifier.Notifier
	if discordNotifier, err := notifier.NewDiscordNotifier(cfg); err != nil {
		log.Warn().Err(err).Msg("Discord notifier not initialized")
	} else {
		n = discordNotifier
	}

	authHandler := auth.NewAuthHandler(cfg)
	chatService := chat.NewService(db, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	guestHandler := handlers.NewGuestHandler(db, n)
	paymentHandler := handlers.NewPaymentHandler(cfg)
	chatHandler := handlers.NewChatHandler(chatService)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, authHandler, guestHandler, paymentHandler, chatHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM, forcing exit after 10 seconds.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown after timeout")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}
