package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rehearse-io/rehearse-server/internal/api/handlers"
	"github.com/rehearse-io/rehearse-server/internal/api/middleware"
	"github.com/rehearse-io/rehearse-server/internal/config"
	"github.com/rehearse-io/rehearse-server/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Recover(cfg))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	onboardingHandler := handlers.NewOnboardingHandler(services.Onboarding, cfg)

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/getuser", authHandler.GetUser)
			})
		})

		// Onboarding routes
		r.Route("/onboarding", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/{kind}", onboardingHandler.Upload)
			r.Get("/status", onboardingHandler.Status)
			r.Get("/artifacts", onboardingHandler.ListArtifacts)
		})
	})

	return r
}
