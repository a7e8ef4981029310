package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"resione-server/internal/infra/pg"
	"resione-server/internal/infra/repository"
	"resione-server/internal/pkg/clock"
	"resione-server/internal/pkg/config"
	"resione-server/internal/usecase/shared"
)

const maxDeliveryAttempts = 5

// Notifier delivers a claimed notification job. The real community runs an
// SMTP relay; this implementation logs the delivery, which is the contract
// the workflow relies on: notifications are fire-and-forget and never block
// or fail a reservation operation.
type Notifier interface {
	Deliver(ctx context.Context, job repository.NotificationJob) error
}

type LoggingNotifier struct {
	logger *slog.Logger
}

func NewLoggingNotifier(logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{logger: logger}
}

func (n *LoggingNotifier) Deliver(_ context.Context, job repository.NotificationJob) error {
	var payload map[string]any
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		payload = map[string]any{"raw": string(job.Payload)}
	}
	n.logger.Info("notification delivered",
		"job_id", job.ID,
		"kind", job.Kind,
		"topic", job.Topic,
		"payload", payload,
	)
	return nil
}

// NotifyWorker polls the jobs table and hands due jobs to the Notifier.
// Claims use row locks with SKIP LOCKED, so running several replicas is
// safe.
type NotifyWorker struct {
	uow      shared.UnitOfWork
	repo     *repository.NotificationRepository
	notifier Notifier
	clock    clock.Clock
	interval time.Duration
	batch    int
	done     chan struct{}
}

func NewNotifyWorker(
	uow shared.UnitOfWork,
	repo *repository.NotificationRepository,
	notifier Notifier,
	clock clock.Clock,
	cfg config.WorkerConfig,
) *NotifyWorker {
	return &NotifyWorker{
		uow:      uow,
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		interval: cfg.NotifyPollInterval,
		batch:    cfg.NotifyBatchSize,
		done:     make(chan struct{}),
	}
}

// Run polls until ctx is cancelled.
func (w *NotifyWorker) Run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("notification worker started", "interval", w.interval, "batch", w.batch)
	for {
		select {
		case <-ctx.Done():
			slog.Info("notification worker stopped")
			return
		case <-ticker.C:
			if err := w.drainOnce(ctx); err != nil {
				slog.Error("notification poll failed", "error", err)
			}
		}
	}
}

// Wait blocks until Run has returned.
func (w *NotifyWorker) Wait() {
	<-w.done
}

func (w *NotifyWorker) drainOnce(ctx context.Context) error {
	return w.uow.WithDB(ctx, func(ctx context.Context, db pg.DBTX) error {
		jobs, err := w.repo.ClaimDueJobs(ctx, db, w.batch)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if deliverErr := w.notifier.Deliver(ctx, job); deliverErr != nil {
				retryAt := w.clock.Now().Add(w.backoff(job.Attempts))
				if markErr := w.repo.MarkFailed(ctx, db, job.ID, maxDeliveryAttempts, deliverErr.Error(), retryAt); markErr != nil {
					slog.Error("failed to requeue notification job", "job_id", job.ID, "error", markErr)
				}
				continue
			}
			if markErr := w.repo.MarkDelivered(ctx, db, job.ID); markErr != nil {
				slog.Error("failed to mark notification job delivered", "job_id", job.ID, "error", markErr)
			}
		}
		return nil
	})
}

func (w *NotifyWorker) backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := time.Minute << uint(attempts-1)
	if d > 30*time.Minute {
		d = 30 * time.Minute
	}
	return d
}
