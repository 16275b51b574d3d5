package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChiErr(t *testing.T) {
	rr := httptest.NewRecorder()
	ChiErr(rr, http.StatusBadGateway, "")

	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"Bad Gateway"}`, rr.Body.String())
}
