package fx

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestRegisterHTTPServerLifecycle_PortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	lc := fxtest.NewLifecycle(t)
	RegisterHTTPServerLifecycle(lc, &http.Server{Addr: ln.Addr().String()}, zap.NewNop().Sugar())

	require.Error(t, lc.Start(context.Background()))
}

func TestRegisterHTTPServerLifecycle_StartStop(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	RegisterHTTPServerLifecycle(lc, &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}, zap.NewNop().Sugar())

	lc.RequireStart().RequireStop()
}
