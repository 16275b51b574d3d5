package status

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"

	"title-reader/internal/backend"
	"title-reader/internal/pkg/chromedevtools"
	"title-reader/internal/pkg/render"
	"title-reader/internal/router"
)

type launcher interface {
	Snapshot() backend.Snapshot
	IsListening(ctx context.Context) bool
	Endpoint() backend.Endpoint
}

// Report is the backend readiness panel: what the launcher decided, whether
// the port answers now, and what the browser says about itself.
type Report struct {
	Endpoint      string                  `json:"endpoint"`
	Listening     bool                    `json:"listening"`
	Launcher      backend.Snapshot        `json:"launcher"`
	DevTools      *chromedevtools.Version `json:"devtools,omitempty"`
	DevToolsError string                  `json:"devtools_error,omitempty"`
}

// Reporter builds Reports; the UI page shares it with the JSON endpoint.
type Reporter struct {
	launcher     launcher
	fetchVersion func(ctx context.Context, url string, timeout time.Duration) (chromedevtools.Version, error)
}

func NewReporter(l *backend.Launcher) *Reporter {
	return &Reporter{launcher: l, fetchVersion: chromedevtools.FetchVersion}
}

func (rp *Reporter) Report(ctx context.Context) Report {
	ep := rp.launcher.Endpoint()
	rep := Report{
		Endpoint:  ep.WebSocketURL(),
		Listening: rp.launcher.IsListening(ctx),
		Launcher:  rp.launcher.Snapshot(),
	}
	if !rep.Listening {
		return rep
	}

	v, err := rp.fetchVersion(ctx, ep.VersionURL(), 2*time.Second)
	if err != nil {
		rep.DevToolsError = err.Error()
		return rep
	}
	rep.DevTools = &v
	return rep
}

type Handler struct {
	reporter *Reporter
}

type NewHandlerParams struct {
	fx.In

	Reporter *Reporter
}

func NewHandler(p NewHandlerParams) *Handler {
	return &Handler{reporter: p.Reporter}
}

func (h *Handler) RegisterRoute(r *chi.Mux) {
	r.Get("/v1/backend/status", h.Handle)
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	render.ChiJSON(w, http.StatusOK, h.reporter.Report(r.Context()))
}

var _ router.Handler = (*Handler)(nil)
