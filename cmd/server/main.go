package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	appfx "title-reader/internal/app/fx"
	healthfx "title-reader/internal/app/health/fx"
	statusfx "title-reader/internal/app/status/fx"
	systemfx "title-reader/internal/app/system/fx"
	titlesapifx "title-reader/internal/app/titles/fx"
	uifx "title-reader/internal/app/ui/fx"
	backendfx "title-reader/internal/backend/fx"
	routerfx "title-reader/internal/router/fx"
	serverfx "title-reader/internal/server/fx"
	titlesfx "title-reader/internal/titles/fx"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		appfx.CoreAppOptions,
		backendfx.Module,
		titlesfx.Module,
		routerfx.CoreRouterOptions,
		serverfx.ServerOptions,
		healthfx.Module,
		statusfx.Module,
		systemfx.Module,
		titlesapifx.Module,
		uifx.Module,
	)

	app.Run()
}
