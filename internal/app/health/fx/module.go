package fx

import (
	"go.uber.org/fx"

	"title-reader/internal/app/health"
	"title-reader/internal/router"
)

var Module = fx.Options(
	fx.Provide(router.AsRoute(health.NewHandler)),
)
