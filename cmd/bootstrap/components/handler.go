package components

import (
	"resione-server/internal/handler"
	"resione-server/internal/handler/api"
	"resione-server/internal/handler/middleware"
	"resione-server/internal/metrics"
	"resione-server/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		api.NewAuthHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(
		metrics.Register,
		handler.NewRouter,
	),
)
