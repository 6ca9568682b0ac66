package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/projet-mariage/wedding-api/internal/auth"
	"github.com/projet-mariage/wedding-api/internal/config"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, authHandler *auth.AuthHandler, guestHandler *GuestHandler, paymentHandler *PaymentHandler, chatHandler *ChatHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
	}
	r.Use(authHandler.Middleware)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Wedding Guest API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, humaConfig)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"bearerAuth": {}}}
	}
	created := func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
		secured(o)
	}

	// Auth routes
	huma.Post(api, "/api/auth/login", authHandler.HandleLogin)

	// Guest routes
	huma.Post(api, "/api/guests", guestHandler.Create, created)
	huma.Get(api, "/api/guests", guestHandler.List, secured)
	huma.Get(api, "/api/guests/{id}", guestHandler.Get, secured)
	huma.Put(api, "/api/guests/{id}", guestHandler.Update, secured)
	huma.Delete(api, "/api/guests/{id}", guestHandler.Delete, secured)

	// Payment routes
	huma.Post(api, "/api/payments/create-checkout-session", paymentHandler.CreateCheckoutSession, created)
	huma.Post(api, "/api/payments/create-payment-intent", paymentHandler.CreatePaymentIntent, secured)
	huma.Get(api, "/api/payments/balance", paymentHandler.GetBalance, secured)

	// Assistant routes
	huma.Post(api, "/api/ai/chat", chatHandler.Chat, secured)
}
