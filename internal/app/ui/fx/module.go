package fx

import (
	"go.uber.org/fx"

	"title-reader/internal/app/ui"
	"title-reader/internal/router"
)

var Module = fx.Module(
	"ui",
	fx.Provide(router.AsRoute(ui.NewHandler)),
)
