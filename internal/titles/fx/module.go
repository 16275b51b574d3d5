package fx

import (
	"go.uber.org/fx"

	"title-reader/internal/backend"
	"title-reader/internal/titles"
)

var Module = fx.Module(
	"titles",
	fx.Provide(
		fx.Annotate(titles.NewChromeDriver, fx.As(new(titles.Driver))),
		fx.Annotate(titles.NewFetcher, fx.As(new(titles.TitleFetcher))),
		func(l *backend.Launcher) titles.Backend { return l },
		titles.NewService,
	),
)
