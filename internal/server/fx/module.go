package fx

import (
	"go.uber.org/fx"

	"title-reader/internal/server"
)

var ServerOptions = fx.Options(
	fx.Provide(server.NewHTTPServer),
	fx.Invoke(RegisterHTTPServerLifecycle),
)
