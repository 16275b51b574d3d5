package ui

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"title-reader/config"
	"title-reader/internal/app/status"
	"title-reader/internal/router"
	"title-reader/internal/sysinfo"
	"title-reader/internal/titles"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type fetcher interface {
	Fetch(ctx context.Context, raw string) (titles.Result, error)
}

type backendReporter interface {
	Report(ctx context.Context) status.Report
}

type banner struct {
	Kind    string
	Message string
	Title   string
}

type pageData struct {
	AppName string
	URL     string
	Banner  *banner
	Backend status.Report
	System  sysinfo.Info
}

// Handler serves the single-page form. A fetch error never escapes as an
// HTTP error; it comes back as a banner on the same page.
type Handler struct {
	appName string
	service fetcher
	backend backendReporter
	system  *sysinfo.Reporter
	logger  *zap.SugaredLogger
}

type NewHandlerParams struct {
	fx.In

	Cfg      *config.Config
	Service  *titles.Service
	Reporter *status.Reporter
	System   *sysinfo.Reporter
	Logger   *zap.SugaredLogger
}

func NewHandler(p NewHandlerParams) *Handler {
	return &Handler{
		appName: p.Cfg.AppName,
		service: p.Service,
		backend: p.Reporter,
		system:  p.System,
		logger:  p.Logger,
	}
}

func (h *Handler) RegisterRoute(r *chi.Mux) {
	r.Get("/", h.Handle)
	r.Post("/", h.Handle)
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	data := pageData{AppName: h.appName}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			data.Banner = &banner{Kind: "error", Message: "Could not read the form: " + err.Error()}
		} else {
			data.URL = r.PostFormValue("url")
			data.Banner = h.fetch(r.Context(), data.URL)
		}
	}

	data.Backend = h.backend.Report(r.Context())
	data.System = h.system.Collect()

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		h.logger.Errorw("ui_render_failed", "err", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) fetch(ctx context.Context, raw string) *banner {
	res, err := h.service.Fetch(ctx, raw)
	switch {
	case err == nil:
		return &banner{Kind: "success", Message: "Title found:", Title: res.Title}
	case errors.Is(err, titles.ErrValidation):
		return &banner{Kind: "info", Message: err.Error()}
	default:
		return &banner{Kind: "error", Message: "Failed to fetch title: " + err.Error()}
	}
}

var _ router.Handler = (*Handler)(nil)
