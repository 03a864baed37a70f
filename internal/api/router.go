/**
 * @description
 * HTTP router for the dashboard service, built on go-chi. Applies logging,
 * recovery, timeout and CORS middleware and groups the authenticated routes
 * behind the bearer-token middleware.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers all routes.
func NewRouter(h *Handler, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Dashboard service is healthy"))
	})

	// Public auth routes
	r.Post("/auth/signup", h.handleSignup)
	r.Post("/auth/login", h.handleLogin)

	// Protected routes that require authentication
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret))

		r.Get("/subscriptions", h.handleListSubscriptions)
		r.Post("/subscriptions", h.handleSubscribe)
		r.Post("/subscriptions/{id}/pause", h.handlePauseSubscription)
		r.Post("/subscriptions/{id}/resume", h.handleResumeSubscription)
		r.Post("/subscriptions/{id}/cancel", h.handleCancelSubscription)

		r.Get("/wallet", h.handleGetWallet)
		r.Get("/wallet/transactions", h.handleListTransactions)
		r.Post("/wallet/topup", h.handleTopUp)
		r.Post("/wallet/redeem", h.handleRedeem)

		r.Get("/services", h.handleListServices)
		r.Post("/services/{id}/subscribe", h.handleServiceSubscribe)
		r.Post("/services/{id}/recharge", h.handleServiceRecharge)
		r.Post("/services/{id}/explore", h.handleServiceExplore)

		r.Get("/bundles", h.handleListBundles)
		r.Post("/bundles/{id}/apply", h.handleApplyBundle)

		r.Get("/settings", h.handleGetSettings)
		r.Put("/settings", h.handleUpdateSettings)
	})

	return r
}
