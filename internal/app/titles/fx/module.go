package fx

import (
	"go.uber.org/fx"

	"title-reader/internal/app/titles"
	"title-reader/internal/router"
)

var Module = fx.Module(
	"titles-api",
	fx.Provide(router.AsRoute(titles.NewHandler)),
)
