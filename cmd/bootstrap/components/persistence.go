package components

import (
	"resione-server/internal/infra/cache"
	"resione-server/internal/infra/readstore"
	"resione-server/internal/infra/repository"
	"resione-server/internal/infra/uow"
	"resione-server/internal/usecase/commands"
	"resione-server/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,

		repository.NewNotificationRepository,
		func(r *repository.NotificationRepository) commands.NotificationRepository { return r },

		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserWriter)),
		),

		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(commands.ReservationReads)),
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.UserReads)),
			fx.As(new(queries.UserViewRepo)),
		),

		fx.Annotate(
			func(c *cache.CalendarCache) *cache.CalendarCache { return c },
			fx.As(new(commands.CalendarInvalidator)),
			fx.As(new(queries.CalendarCache)),
		),
	),
)
