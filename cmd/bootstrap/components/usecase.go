package components

import (
	"time"

	"resione-server/internal/domain/reservation"
	"resione-server/internal/pkg/clock"
	"resione-server/internal/pkg/config"
	"resione-server/internal/usecase"
	"resione-server/internal/usecase/commands"
	"resione-server/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewCancellationPolicy,
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		queries.NewReservationQueries,
		queries.NewUserQueries,
		usecase.NewTokenValidator,
	),
)

func NewCancellationPolicy(cfg config.Config) (*reservation.CancellationPolicy, error) {
	loc, err := time.LoadLocation(cfg.App.TimeZone)
	if err != nil {
		return nil, err
	}
	return reservation.NewCancellationPolicy(loc), nil
}
