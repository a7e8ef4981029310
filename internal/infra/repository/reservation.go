package repository

import (
	"context"
	"errors"

	"resione-server/internal/domain/reservation"
	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
)

// ReservationRepository is the write side of the reservation store. All SQL
// is hand-written; date and time columns travel as their zero-padded wire
// strings on both directions.
type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, db pg.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	const q = `
INSERT INTO reservations (
    id, zone, date, start_time, end_time, party_size, comment,
    resident_email, resident_name, resident_unit, resident_national_id, status
) VALUES ($1, $2, $3::date, $4::time, $5::time, $6, $7, $8, $9, $10, $11, $12)
RETURNING id
`
	var id uuid.UUID
	err := db.QueryRow(ctx, q,
		res.ID(),
		res.Zone(),
		res.Date().String(),
		res.TimeRange().Start().String(),
		res.TimeRange().End().String(),
		res.PartySize().Int(),
		res.Comment().String(),
		res.Requester().Email(),
		res.Requester().Name(),
		res.Requester().Unit(),
		res.Requester().NationalID(),
		res.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create reservation", err)
	}
	return id, nil
}

// FindByIDForUpdate rehydrates the entity with the row locked, so a
// decision and its conflict re-check happen under the same lock.
func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, tx pg.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	const q = reservationColumns + `
FROM reservations
WHERE id = $1
FOR UPDATE
`
	return r.scanReservation(tx.QueryRow(ctx, q, id))
}

func (r *ReservationRepository) FindByID(ctx context.Context, db pg.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	const q = reservationColumns + `
FROM reservations
WHERE id = $1
`
	return r.scanReservation(db.QueryRow(ctx, q, id))
}

// HasApprovedOverlap runs the half-open interval test against approved
// reservations for (zone, date): start < existing.end AND end > existing.start.
// excludeID skips the record being edited; pass uuid.Nil otherwise.
func (r *ReservationRepository) HasApprovedOverlap(ctx context.Context, db pg.DBTX, zone, date, start, end string, excludeID uuid.UUID) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1
    FROM reservations
    WHERE zone = $1
      AND date = $2::date
      AND status = 'aprobada'
      AND start_time < $4::time
      AND end_time > $3::time
      AND id <> $5
)
`
	var exists bool
	if err := db.QueryRow(ctx, q, zone, date, start, end, excludeID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check approved overlap", err)
	}
	return exists, nil
}

// SaveDecision persists a pending→approved or pending→rejected transition.
// The partial index backing the approved-overlap exclusion constraint fires
// here when a concurrent approval won the slot first.
func (r *ReservationRepository) SaveDecision(ctx context.Context, tx pg.DBTX, res *reservation.Reservation) error {
	const q = `
UPDATE reservations
SET status = $2, responded_by = $3, responded_at = $4, reject_reason = $5, updated_at = now()
WHERE id = $1
`
	tag, err := tx.Exec(ctx, q,
		res.ID(),
		res.Status().String(),
		res.RespondedBy(),
		pgconv.TimePtrToPgtype(res.RespondedAt()),
		res.RejectReason(),
	)
	if err != nil {
		return wrapPgErr("failed to save reservation decision", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// SaveFields persists an edit of the bookable fields of an approved record.
func (r *ReservationRepository) SaveFields(ctx context.Context, tx pg.DBTX, res *reservation.Reservation) error {
	const q = `
UPDATE reservations
SET zone = $2, date = $3::date, start_time = $4::time, end_time = $5::time,
    party_size = $6, comment = $7, updated_at = now()
WHERE id = $1
`
	tag, err := tx.Exec(ctx, q,
		res.ID(),
		res.Zone(),
		res.Date().String(),
		res.TimeRange().Start().String(),
		res.TimeRange().End().String(),
		res.PartySize().Int(),
		res.Comment().String(),
	)
	if err != nil {
		return wrapPgErr("failed to save reservation fields", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete removes the record (cancellation). Returns false when no row
// existed.
func (r *ReservationRepository) Delete(ctx context.Context, db pg.DBTX, id uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete reservation", err)
	}
	return tag.RowsAffected() > 0, nil
}

const reservationColumns = `
SELECT id, zone,
       to_char(date, 'YYYY-MM-DD'),
       to_char(start_time, 'HH24:MI'),
       to_char(end_time, 'HH24:MI'),
       party_size, comment,
       resident_email, resident_name, resident_unit, resident_national_id,
       status, responded_by, responded_at, reject_reason,
       created_at, updated_at`

type reservationRow struct {
	ID            uuid.UUID
	Zone          string
	Date          string
	StartTime     string
	EndTime       string
	PartySize     int
	Comment       string
	ResidentEmail string
	ResidentName  string
	ResidentUnit  string
	ResidentID    string
	Status        string
	RespondedBy   string
	RespondedAt   pgtype.Timestamptz
	RejectReason  string
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (r *ReservationRepository) scanReservation(row interface{ Scan(dest ...any) error }) (*reservation.Reservation, error) {
	var rr reservationRow
	err := row.Scan(
		&rr.ID, &rr.Zone, &rr.Date, &rr.StartTime, &rr.EndTime,
		&rr.PartySize, &rr.Comment,
		&rr.ResidentEmail, &rr.ResidentName, &rr.ResidentUnit, &rr.ResidentID,
		&rr.Status, &rr.RespondedBy, &rr.RespondedAt, &rr.RejectReason,
		&rr.CreatedAt, &rr.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}
	return rowToEntity(rr)
}

// rowToEntity trusts stored rows only as far as the value objects allow; a
// row that no longer parses is surfaced as a DB failure, not handed to the
// workflow.
func rowToEntity(rr reservationRow) (*reservation.Reservation, error) {
	date, err := reservation.NewDayDate(rr.Date)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid date", err)
	}
	start, err := reservation.NewMinuteTime(rr.StartTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid start time", err)
	}
	end, err := reservation.NewMinuteTime(rr.EndTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid end time", err)
	}
	timeRange, err := reservation.NewTimeRange(start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid time range", err)
	}
	partySize, err := reservation.NewPartySize(rr.PartySize)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid party size", err)
	}

	// Requester fields are rehydrated without validation: approve() owns the
	// integrity re-check and must see incomplete rows as-is.
	requester := reservation.ReconstructRequester(rr.ResidentEmail, rr.ResidentName, rr.ResidentUnit, rr.ResidentID)

	return reservation.ReconstructReservation(
		rr.ID,
		rr.Zone,
		date,
		timeRange,
		partySize,
		reservation.NewComment(rr.Comment),
		requester,
		reservation.Status(rr.Status),
		rr.RespondedBy,
		pgconv.TimePtrFromPgtype(rr.RespondedAt),
		rr.RejectReason,
		pgconv.TimeFromPgtype(rr.CreatedAt),
		pgconv.TimeFromPgtype(rr.UpdatedAt),
	), nil
}

func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
