package fx

import (
	"go.uber.org/fx"

	"title-reader/internal/app/system"
	"title-reader/internal/router"
	"title-reader/internal/sysinfo"
)

var Module = fx.Module(
	"system-info",
	fx.Provide(
		sysinfo.NewReporter,
		router.AsRoute(system.NewHandler),
	),
)
