package timestub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AlexZav1327/word-of-the-day/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	host   string
	port   int
	Server *http.Server
	log    *logrus.Entry
}

type TimeService interface {
	Current(area, location string) (models.WorldTime, error)
}

func NewRouter(service TimeService, log *logrus.Logger) http.Handler {
	h := NewHandler(service, log)
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/timezone/{area}/{location}", h.get)
	})

	return r
}

func New(host string, port int, service TimeService, log *logrus.Logger) *Server {
	server := Server{
		host: host,
		port: port,
		log:  log.WithField("module", "time_stub_http"),
	}

	server.Server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           NewRouter(service, log),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return &server
}

func (s *Server) Run(ctx context.Context) error {
	shutdownErr := make(chan error, 1)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr <- s.Server.Shutdown(shutdownCtx)
	}()

	s.log.Infof("Time stub is running at port %d...", s.port)

	err := s.Server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Server.ListenAndServe: %w", err)
	}

	err = <-shutdownErr
	if err != nil {
		return fmt.Errorf("Server.Shutdown: %w", err)
	}

	return nil
}
