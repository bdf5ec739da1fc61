package timestub

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service TimeService
	log     *logrus.Entry
}

func NewHandler(service TimeService, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.WithField("module", "time_stub_handler"),
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.Current(chi.URLParam(r, "area"), chi.URLParam(r, "location"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err = json.NewEncoder(w).Encode(current)
	if err != nil {
		h.log.Warningf("json.NewEncoder.Encode: %s", err)
	}
}
