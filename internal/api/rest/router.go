package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/model"
)

// RouterConfig carries the dependencies of the HTTP gateway.
type RouterConfig struct {
	Accounts       AccountService
	Tokens         TokenService
	ContextManager model.ContextManager
	Checks         map[string]Check
	AllowedOrigins []string
	Logger         *logger.Logger
}

// NewRouter builds the chi router with the account routes of the web frontend.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery(cfg.Logger))
	r.Use(Logging(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	auth := NewAuthHandler(cfg.Accounts, cfg.Tokens, cfg.ContextManager, cfg.Logger)
	health := NewHealthHandler(cfg.Checks)

	r.Get("/health", health.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/verify-otp", auth.VerifyOTP)
		r.Post("/login", auth.Login)
		r.Post("/refresh", auth.Refresh)

		r.With(Authenticate(cfg.Tokens, cfg.ContextManager)).Get("/me", auth.Me)
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/reset-password-request", auth.RequestPasswordReset)
		r.Post("/reset-password", auth.ResetPassword)
	})

	return r
}
