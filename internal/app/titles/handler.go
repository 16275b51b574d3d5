package titles

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"title-reader/internal/pkg/render"
	"title-reader/internal/router"
	titlesvc "title-reader/internal/titles"
)

type fetcher interface {
	Fetch(ctx context.Context, raw string) (titlesvc.Result, error)
}

type Handler struct {
	service fetcher
	logger  *zap.SugaredLogger
}

type NewHandlerParams struct {
	fx.In

	Service *titlesvc.Service
	Logger  *zap.SugaredLogger
}

func NewHandler(p NewHandlerParams) *Handler {
	return &Handler{service: p.Service, logger: p.Logger}
}

func (h *Handler) RegisterRoute(r *chi.Mux) {
	r.Post("/v1/titles", h.Handle)
}

type fetchRequest struct {
	URL string `json:"url"`
}

type fetchResponse struct {
	OK         bool   `json:"ok"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	AttemptID  string `json:"attempt_id"`
	DurationMs int64  `json:"duration_ms"`
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
		render.ChiErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := h.service.Fetch(r.Context(), req.URL)
	if err != nil {
		render.ChiErr(w, statusFor(err), err.Error())
		return
	}

	render.ChiJSON(w, http.StatusOK, fetchResponse{
		OK:         true,
		Title:      res.Title,
		URL:        res.URL,
		AttemptID:  res.AttemptID,
		DurationMs: res.Duration.Milliseconds(),
	})
}

var _ router.Handler = (*Handler)(nil)
