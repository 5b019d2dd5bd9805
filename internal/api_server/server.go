package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/config"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/events"
	handlers "github.com/apatilgtn/Kairos-isdp-sub001/internal/handlers/v1alpha1"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/service"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport/confluence"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport/sharepoint"
	"github.com/apatilgtn/Kairos-isdp-sub001/pkg/metrics"
	"github.com/apatilgtn/Kairos-isdp-sub001/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

// New returns a new instance of the export API server.
func New(cfg *config.Config, store store.Store, listener net.Listener) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	adapterTimeout := time.Duration(s.cfg.Service.AdapterTimeout) * time.Second
	registry := transport.NewRegistry()
	registry.Register("sharepoint", sharepoint.NewAdapter(adapterTimeout))
	registry.Register("confluence", confluence.NewAdapter(adapterTimeout))

	eventProducer := events.NewEventProducer(&events.StdoutWriter{}, events.WithOutputTopic(s.cfg.Service.EventTopic))
	defer eventProducer.Close()

	exportService := service.NewExportService(s.store, registry, eventProducer, adapterTimeout)
	handler := handlers.NewServiceHandler(exportService)

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("export_api")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	router.Route("/api/v1alpha1", func(r chi.Router) {
		r.Post("/exports", handler.CreateExport)
		r.Get("/exports", handler.ListExports)
		r.Get("/exports/{id}", handler.GetExport)
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
