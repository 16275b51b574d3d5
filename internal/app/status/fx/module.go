package fx

import (
	"go.uber.org/fx"

	"title-reader/internal/app/status"
	"title-reader/internal/router"
)

var Module = fx.Module(
	"backend-status",
	fx.Provide(
		status.NewReporter,
		router.AsRoute(status.NewHandler),
	),
)
