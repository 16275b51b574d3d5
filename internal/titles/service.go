package titles

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"title-reader/config"
	"title-reader/internal/backend"
)

// Backend is the lifecycle surface the fetch flow needs from the launcher.
type Backend interface {
	EnsureRunning(ctx context.Context) (*backend.Process, error)
	WaitListening(ctx context.Context, interval time.Duration) error
	IsListening(ctx context.Context) bool
	Endpoint() backend.Endpoint
}

// TitleFetcher is implemented by *Fetcher.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, url string, timeout time.Duration) (string, error)
}

type Result struct {
	AttemptID string        `json:"attempt_id"`
	URL       string        `json:"url"`
	Title     string        `json:"title"`
	Duration  time.Duration `json:"-"`
}

type fetchRequest struct {
	URL string `validate:"required,max=2048"`
}

// Service runs one user-triggered fetch: normalize, make sure the backend is
// up, check it listens, then read the title. Fetches never overlap.
type Service struct {
	backend        Backend
	fetcher        TitleFetcher
	validate       *validator.Validate
	logger         *zap.SugaredLogger
	fetchTimeout   time.Duration
	startupTimeout time.Duration

	mu sync.Mutex
}

type NewServiceParams struct {
	fx.In

	Cfg     *config.Config
	Backend Backend
	Fetcher TitleFetcher
	Logger  *zap.SugaredLogger
}

func NewService(p NewServiceParams) *Service {
	return &Service{
		backend:        p.Backend,
		fetcher:        p.Fetcher,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         p.Logger,
		fetchTimeout:   p.Cfg.Browser.FetchTimeout,
		startupTimeout: p.Cfg.Browser.StartupTimeout,
	}
}

func (s *Service) Fetch(ctx context.Context, raw string) (Result, error) {
	res := Result{AttemptID: uuid.NewString(), URL: NormalizeURL(raw)}

	if err := s.validateURL(res.URL); err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	log := s.logger.With("attempt_id", res.AttemptID, "url", res.URL)

	proc, err := s.backend.EnsureRunning(ctx)
	if err != nil {
		log.Errorw("title_fetch_backend_unavailable", "err", err)
		return res, err
	}
	if proc != nil {
		waitCtx, cancel := context.WithTimeout(ctx, s.startupTimeout)
		if err := s.backend.WaitListening(waitCtx, 100*time.Millisecond); err != nil {
			log.Warnw("title_fetch_backend_slow_start", "pid", proc.PID, "err", err)
		}
		cancel()
	}
	if !s.backend.IsListening(ctx) {
		err := fmt.Errorf("%w: browser backend is not listening on %s", backend.ErrLaunch, s.backend.Endpoint().Addr())
		log.Errorw("title_fetch_backend_not_listening", "err", err)
		return res, err
	}

	title, err := s.fetcher.FetchTitle(ctx, res.URL, s.fetchTimeout)
	res.Duration = time.Since(start)
	if err != nil {
		log.Warnw("title_fetch_failed", "duration", res.Duration, "err", err)
		return res, err
	}

	res.Title = title
	log.Infow("title_fetched", "title", title, "duration", res.Duration)
	return res, nil
}

func (s *Service) validateURL(url string) error {
	err := s.validate.Struct(fetchRequest{URL: url})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return fmt.Errorf("%w: please enter a URL first", ErrValidation)
		case "max":
			return fmt.Errorf("%w: URL is longer than %s characters", ErrValidation, verrs[0].Param())
		}
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
