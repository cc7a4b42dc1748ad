package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	handlers "github.com/imd-care/care-reports/pkg/handlers/report"
	"github.com/imd-care/care-reports/pkg/runtime/export"
	caremiddleware "github.com/imd-care/care-reports/pkg/server/middleware"
	"github.com/imd-care/care-reports/pkg/services/config"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router  http.Handler
	logger  *zerolog.Logger
	server  *http.Server
	timeout time.Duration
}

type Dependencies struct {
	Records   handlers.CollectionSource
	Builder   handlers.Builder
	Presets   config.PresetRegistry
	Exporters export.Registry
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter mounts the report API under /api/v1
func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	exporters := deps.Exporters
	if exporters == nil {
		exporters = export.DefaultRegistry()
	}
	reportHandler := handlers.NewHandler(deps.Records, deps.Builder, deps.Presets, exporters)

	router := chi.NewRouter()

	router.Use(caremiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports/clinical", reportHandler.ClinicalReport)
		r.Post("/reports/admin", reportHandler.AdminReport)
		r.Get("/presets", reportHandler.ListPresets)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:  router,
		logger:  &logger,
		timeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until the listener fails or the process receives SIGINT or
// SIGTERM, then drains in-flight requests
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
