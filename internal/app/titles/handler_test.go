package titles

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"title-reader/internal/backend"
	titlesvc "title-reader/internal/titles"
)

type fakeService struct {
	res titlesvc.Result
	err error
	got string
}

func (f *fakeService) Fetch(_ context.Context, raw string) (titlesvc.Result, error) {
	f.got = raw
	return f.res, f.err
}

func serve(t *testing.T, svc fetcher, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := &Handler{service: svc, logger: zap.NewNop().Sugar()}
	r := chi.NewRouter()
	h.RegisterRoute(r)

	req := httptest.NewRequest(http.MethodPost, "/v1/titles", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Success(t *testing.T) {
	t.Parallel()

	svc := &fakeService{res: titlesvc.Result{
		AttemptID: "a1",
		URL:       "https://example.com",
		Title:     "Example Domain",
		Duration:  1500 * time.Millisecond,
	}}
	rr := serve(t, svc, `{"url":"example.com"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "example.com", svc.got)

	var got fetchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, fetchResponse{OK: true, Title: "Example Domain", URL: "https://example.com", AttemptID: "a1", DurationMs: 1500}, got)
}

func TestHandler_InvalidJSON(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeService{}, `{`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), `"error":"invalid json"`)
}

func TestHandler_ErrorStatuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: please enter a URL first", titlesvc.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: download: 403", backend.ErrProvision), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: start: permission denied", backend.ErrLaunch), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: timeout", titlesvc.ErrFetch), http.StatusBadGateway},
		{context.Canceled, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rr := serve(t, &fakeService{err: tc.err}, `{"url":"example.com"}`)
		require.Equal(t, tc.want, rr.Code, tc.err.Error())

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Equal(t, tc.err.Error(), body["error"])
	}
}
