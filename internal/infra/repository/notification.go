package repository

import (
	"context"
	"time"

	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// NotificationJob is a queued fire-and-forget delivery. Jobs are written in
// the same transaction as the workflow change that caused them; delivery
// failures never roll the workflow back.
type NotificationJob struct {
	ID       int64
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int
}

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx pg.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	const q = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'queued')
`
	if _, err := tx.Exec(ctx, q, kind, topic, payload, pgconv.TimeToPgtype(runAt)); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDueJobs picks up to limit queued jobs whose run_at has passed,
// marking them processing so concurrent workers skip them.
func (r *NotificationRepository) ClaimDueJobs(ctx context.Context, db pg.DBTX, limit int) ([]NotificationJob, error) {
	const q = `
UPDATE notification_jobs
SET status = 'processing', attempts = attempts + 1
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE status = 'queued' AND run_at <= now()
    ORDER BY run_at
    LIMIT $1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, run_at, attempts
`
	rows, err := db.Query(ctx, q, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		var runAt pgtype.Timestamptz
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &runAt, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		j.RunAt = pgconv.TimeFromPgtype(runAt)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *NotificationRepository) MarkDelivered(ctx context.Context, db pg.DBTX, jobID int64) error {
	const q = `
UPDATE notification_jobs
SET status = 'delivered', delivered_at = now(), last_error = ''
WHERE id = $1
`
	if _, err := db.Exec(ctx, q, jobID); err != nil {
		return infra.WrapRepoErr("failed to mark notification job delivered", err)
	}
	return nil
}

// MarkFailed requeues the job for a later run; after maxAttempts it parks
// the job as dead.
func (r *NotificationRepository) MarkFailed(ctx context.Context, db pg.DBTX, jobID int64, maxAttempts int, lastError string, retryAt time.Time) error {
	const q = `
UPDATE notification_jobs
SET status = CASE WHEN attempts >= $2 THEN 'dead' ELSE 'queued' END,
    run_at = $4,
    last_error = $3
WHERE id = $1
`
	if _, err := db.Exec(ctx, q, jobID, maxAttempts, lastError, pgconv.TimeToPgtype(retryAt)); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
