package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Neb-Ur/service-app-backend/internal/api/handlers/http/emergency"
	"github.com/Neb-Ur/service-app-backend/internal/api/handlers/http/system"
	"github.com/Neb-Ur/service-app-backend/internal/config"
	"github.com/Neb-Ur/service-app-backend/internal/middleware"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

// NewServer wires the HTTP surface. metrics may be nil when disabled.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, dispatcher emergency.Dispatcher, checks map[string]system.Pinger, metrics http.Handler) *Server {
	emergencyHandler := emergency.NewHandler(logger, dispatcher)
	systemHandler := system.NewHandler(logger, checks)

	r := InitRouter(ctx, cfg, emergencyHandler, systemHandler, metrics, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(ctx context.Context, cfg *config.Config, emergencyHandler *emergency.Handler, systemHandler *system.Handler, metrics http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/emergencies", func(er chi.Router) {
			er.Use(middleware.Limit(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst, 5*time.Minute, logger))

			er.Post("/", emergencyHandler.EmergencyCreate)
			er.Post("/respond", emergencyHandler.EmergencyRespond)
			er.Get("/technicians/{id}/pending", emergencyHandler.TechnicianPending)
			er.Get("/{id}", emergencyHandler.EmergencyGet)
		})

		api.Get("/health", systemHandler.SystemHealth)
	})

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
