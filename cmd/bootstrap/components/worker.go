package components

import (
	"context"

	"resione-server/internal/infra/repository"
	"resione-server/internal/pkg/clock"
	"resione-server/internal/pkg/config"
	"resione-server/internal/usecase/shared"
	"resione-server/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			worker.NewLoggingNotifier,
			fx.As(new(worker.Notifier)),
		),
		NewNotifyWorker,
	),
	fx.Invoke(StartNotifyWorker),
)

func NewNotifyWorker(
	uow shared.UnitOfWork,
	repo *repository.NotificationRepository,
	notifier worker.Notifier,
	clk clock.Clock,
	cfg config.Config,
) *worker.NotifyWorker {
	return worker.NewNotifyWorker(uow, repo, notifier, clk, cfg.Worker)
}

func StartNotifyWorker(lc fx.Lifecycle, w *worker.NotifyWorker) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go w.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			w.Wait()
			return nil
		},
	})
}
