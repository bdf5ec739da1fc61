package pageserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	addr   string
	Server *http.Server
	log    *logrus.Entry
}

// NewRouter serves the page. When withMetrics is false /metrics is expected
// on a separate listener, see NewMetricsServer.
func NewRouter(service PageService, log *logrus.Logger, withMetrics bool) http.Handler {
	h := NewHandler(service, log)
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Get("/healthz", h.health)

	if withMetrics {
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(h.metric)
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
		r.Get("/", h.index)
	})

	return r
}

func New(addr string, service PageService, log *logrus.Logger, withMetrics bool) *Server {
	return newServer(addr, NewRouter(service, log, withMetrics), log.WithField("module", "http"))
}

func NewMetricsServer(addr string, log *logrus.Logger) *Server {
	r := chi.NewRouter()
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return newServer(addr, r, log.WithField("module", "metrics_http"))
}

func newServer(addr string, handler http.Handler, log *logrus.Entry) *Server {
	return &Server{
		addr: addr,
		log:  log,
		Server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 30 * time.Second,
		},
	}
}

func (s *Server) Run(ctx context.Context) error {
	defer s.log.Info("Server is stopped")

	shutdownErr := make(chan error, 1)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr <- s.Server.Shutdown(shutdownCtx)
	}()

	s.log.Infof("Server is running at %s...", s.addr)

	err := s.Server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Server.ListenAndServe: %w", err)
	}

	// ListenAndServe returns as soon as Shutdown starts, in-flight requests are
	// still being served until Shutdown itself returns.
	err = <-shutdownErr
	if err != nil {
		return fmt.Errorf("Server.Shutdown: %w", err)
	}

	return nil
}
