package fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"title-reader/internal/backend"
)

var Module = fx.Module(
	"browser-backend",
	fx.Provide(
		backend.NewEndpoint,
		backend.NewProvisioner,
		backend.NewLauncher,
	),
	fx.Invoke(registerLifecycle),
)

// A launched backend is left running on stop; the hook only reports it.
func registerLifecycle(lc fx.Lifecycle, l *backend.Launcher, log *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			snap := l.Snapshot()
			if snap.State == backend.StateLaunched && !snap.Exited {
				log.Infow("browser_left_running", "pid", snap.PID, "addr", l.Endpoint().Addr())
			}
			return nil
		},
	})
}
