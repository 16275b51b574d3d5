package system

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"title-reader/internal/pkg/render"
	"title-reader/internal/router"
	"title-reader/internal/sysinfo"
)

type Handler struct {
	reporter *sysinfo.Reporter
}

func NewHandler(reporter *sysinfo.Reporter) *Handler {
	return &Handler{reporter: reporter}
}

func (h *Handler) RegisterRoute(r *chi.Mux) {
	r.Get("/v1/system", h.Handle)
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	render.ChiJSON(w, http.StatusOK, h.reporter.Collect())
}

var _ router.Handler = (*Handler)(nil)
