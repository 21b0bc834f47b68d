package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tripay-gateway/internal/config"
	red "tripay-gateway/internal/infra/redis"
	"tripay-gateway/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server wires the webhook dispatcher and checkout API onto one listener.
type Server struct {
	cfg         *config.Config
	reconcileUC usecase.ReconcileUseCase
	checkoutUC  usecase.CheckoutUseCase
	limiter     *red.RateLimiter
	log         *zerolog.Logger
	server      *http.Server
}

func NewServer(cfg *config.Config, reconcileUC usecase.ReconcileUseCase, checkoutUC usecase.CheckoutUseCase, limiter *red.RateLimiter, logger *zerolog.Logger) *Server {
	return &Server{
		cfg:         cfg,
		reconcileUC: reconcileUC,
		checkoutUC:  checkoutUC,
		limiter:     limiter,
		log:         logger,
	}
}

// Router builds the chi router. Split out from Start so tests can drive it
// with httptest.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	webhook := Chain(
		webhookHandler(s.reconcileUC, s.cfg.Webhook, s.log),
		TraceID(),
		RequestLog(s.log),
		RateLimit(s.limiter, s.cfg.Webhook.RateLimit, s.cfg.Webhook.RateWindow, s.log),
	)
	r.Method(http.MethodPost, "/webhook/tripay", webhook)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/checkout", Chain(
			checkoutHandler(s.checkoutUC, s.log),
			TraceID(),
			RequestLog(s.log),
		))
		r.Method(http.MethodGet, "/channels", Chain(
			channelsHandler(),
			BearerAuth(s.cfg.Server.APIKey, s.log),
		))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.cfg.Server.Port).Msg("http server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
