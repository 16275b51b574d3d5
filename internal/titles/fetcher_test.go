package titles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"title-reader/internal/backend"
)

type slowDriver struct{}

func (slowDriver) Title(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestFetcher_FetchTitle_Timeout(t *testing.T) {
	t.Parallel()

	f := NewFetcher(slowDriver{}, backend.Endpoint{Host: "127.0.0.1", Port: 9222})

	start := time.Now()
	_, err := f.FetchTitle(context.Background(), "https://example.com", 50*time.Millisecond)
	require.ErrorIs(t, err, ErrFetch)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestFetcher_FetchTitle_UsesEndpoint(t *testing.T) {
	t.Parallel()

	d := &stubDriver{title: "Example Domain"}
	f := NewFetcher(d, backend.Endpoint{Host: "127.0.0.1", Port: 9333})

	title, err := f.FetchTitle(context.Background(), "https://example.com", 0)
	require.NoError(t, err)
	require.Equal(t, "Example Domain", title)
	require.Equal(t, "ws://127.0.0.1:9333", d.wsURL)
}
