package pageserver

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/AlexZav1327/word-of-the-day/internal/ipinfo"
	"github.com/AlexZav1327/word-of-the-day/internal/models"
	"github.com/sirupsen/logrus"
)

//go:embed templates
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type Handler struct {
	service PageService
	log     *logrus.Entry
	metrics *metrics
}

type PageService interface {
	Compose(ctx context.Context, ip string) (models.Page, error)
}

func NewHandler(service PageService, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.WithField("module", "handler"),
		metrics: serverMetrics,
	}
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Compose(r.Context(), ipinfo.FromRequest(r))
	if err != nil {
		h.log.Errorf("service.Compose: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	var body bytes.Buffer

	err = indexTemplate.Execute(&body, page)
	if err != nil {
		h.log.Errorf("indexTemplate.Execute: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err = body.WriteTo(w)
	if err != nil {
		h.log.Warningf("body.WriteTo: %s", err)
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	_, err := w.Write([]byte("OK"))
	if err != nil {
		h.log.Warningf("w.Write: %s", err)
	}
}
