package api

import (
	"log/slog"
	"net/http"
	"time"

	"banking-suite/internal/api/handler"
	mw "banking-suite/internal/api/middleware"
	"banking-suite/internal/config"
	"banking-suite/internal/domain/account"
	"banking-suite/internal/domain/card"
	"banking-suite/internal/domain/loan"

	_ "banking-suite/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupAccountsRouter wires the Accounts service: account CRUD, the customer
// details aggregation and token minting.
func SetupAccountsRouter(accountService account.AccountService, detailsService account.CustomerDetailsService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := newBaseRouter(cfg, logger)

	accountHandler := handler.NewAccountHandler(accountService, logger)
	customerHandler := handler.NewCustomerHandler(detailsService, logger)
	authHandler := handler.NewAuthHandler(*cfg, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})

	router.Route("/accounts", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", accountHandler.CreateAccount)
		r.Put("/", accountHandler.UpdateAccount)
		r.Route("/{mobileNumber}", func(r chi.Router) {
			r.Get("/", accountHandler.GetAccount)
			r.Delete("/", accountHandler.DeleteAccount)
		})
	})

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/{mobileNumber}/details", customerHandler.GetCustomerDetails)
	})

	return router
}

// SetupLoansRouter wires the Loans service.
func SetupLoansRouter(loanService loan.LoanService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := newBaseRouter(cfg, logger)

	loanHandler := handler.NewLoanHandler(loanService, logger)
	authHandler := handler.NewAuthHandler(*cfg, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})

	router.Route("/loans", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", loanHandler.CreateLoan)
		r.Put("/", loanHandler.UpdateLoan)
		r.Route("/{mobileNumber}", func(r chi.Router) {
			r.Get("/", loanHandler.GetLoan)
			r.Delete("/", loanHandler.DeleteLoan)
		})
	})

	return router
}

// SetupCardsRouter wires the Cards service.
func SetupCardsRouter(cardService card.CardService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := newBaseRouter(cfg, logger)

	cardHandler := handler.NewCardHandler(cardService, logger)
	authHandler := handler.NewAuthHandler(*cfg, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})

	router.Route("/cards", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", cardHandler.CreateCard)
		r.Put("/", cardHandler.UpdateCard)
		r.Route("/{mobileNumber}", func(r chi.Router) {
			r.Get("/", cardHandler.GetCard)
			r.Delete("/", cardHandler.DeleteCard)
		})
	})

	return router
}

func newBaseRouter(cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.Correlation)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}
