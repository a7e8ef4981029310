package readstore

import (
	"context"
	"fmt"
	"strings"

	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/pkg/pgconv"
	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db pg.DBTX
}

func NewReservationReadStore(db pg.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const reservationViewColumns = `
SELECT id, zone,
       to_char(date, 'YYYY-MM-DD'),
       to_char(start_time, 'HH24:MI'),
       to_char(end_time, 'HH24:MI'),
       party_size, comment,
       resident_email, resident_name, resident_unit, resident_national_id,
       status, responded_by, responded_at, reject_reason,
       created_at, updated_at
FROM reservations`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	q := reservationViewColumns + ` WHERE id = $1`

	view, err := scanReservationView(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

// List applies the optional filter; default order is (date asc, start asc)
// so pending queues and calendars read chronologically.
func (r *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	var (
		conds []string
		args  []any
	)
	addCond := func(expr, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	addCond("status = $%d", filter.Status)
	addCond("resident_email = $%d", filter.ResidentEmail)
	addCond("zone = $%d", filter.Zone)
	addCond("date = $%d::date", filter.Date)

	q := reservationViewColumns
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY date, start_time"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, view)
	}
	return result, rows.Err()
}

// ApprovedForZoneDate feeds the calendar view and the read-through cache.
func (r *ReservationReadStore) ApprovedForZoneDate(ctx context.Context, zone, date string) ([]queries.CalendarEntry, error) {
	const q = `
SELECT id, zone,
       to_char(date, 'YYYY-MM-DD'),
       to_char(start_time, 'HH24:MI'),
       to_char(end_time, 'HH24:MI'),
       party_size, resident_name, resident_unit
FROM reservations
WHERE zone = $1 AND date = $2::date AND status = 'aprobada'
ORDER BY start_time
`
	rows, err := r.db.Query(ctx, q, zone, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list approved reservations", err)
	}
	defer rows.Close()

	var result []queries.CalendarEntry
	for rows.Next() {
		var e queries.CalendarEntry
		if err := rows.Scan(&e.ID, &e.Zone, &e.Date, &e.StartTime, &e.EndTime, &e.PartySize, &e.ResidentName, &e.ResidentUnit); err != nil {
			return nil, infra.WrapRepoErr("failed to scan calendar entry", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func scanReservationView(row interface{ Scan(dest ...any) error }) (*queries.ReservationView, error) {
	var (
		v            queries.ReservationView
		respondedBy  string
		respondedAt  pgtype.Timestamptz
		rejectReason string
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Zone, &v.Date, &v.StartTime, &v.EndTime,
		&v.PartySize, &v.Comment,
		&v.ResidentEmail, &v.ResidentName, &v.ResidentUnit, &v.ResidentNationalID,
		&v.Status, &respondedBy, &respondedAt, &rejectReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if respondedBy != "" {
		v.RespondedBy = &respondedBy
	}
	v.RespondedAt = pgconv.TimePtrFromPgtype(respondedAt)
	if rejectReason != "" {
		v.RejectReason = &rejectReason
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
