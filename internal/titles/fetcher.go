package titles

import (
	"context"
	"fmt"
	"time"

	"title-reader/internal/backend"
)

const DefaultFetchTimeout = 30 * time.Second

// Fetcher reads page titles through a live backend. It does not probe the
// backend itself; callers check liveness first.
type Fetcher struct {
	driver   Driver
	endpoint backend.Endpoint
}

func NewFetcher(driver Driver, endpoint backend.Endpoint) *Fetcher {
	return &Fetcher{driver: driver, endpoint: endpoint}
}

// FetchTitle bounds navigation and the title wait together by timeout.
// Every failure is reported as ErrFetch with the cause kept in the chain.
func (f *Fetcher) FetchTitle(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	title, err := f.driver.Title(ctx, f.endpoint.WebSocketURL(), url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return title, nil
}
