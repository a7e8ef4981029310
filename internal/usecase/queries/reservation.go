package queries

import (
	"context"

	"resione-server/internal/infra"
	"resione-server/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrViewNotFound  = errs.New("reservation not found")
	ErrViewForbidden = errs.New("reservation belongs to another resident")
	ErrQueryFailed   = errs.New("query failed")
)

// Viewer is the authenticated caller on the read side. Residents only see
// their own reservations; administrators see everything.
type Viewer struct {
	Email   string
	IsAdmin bool
}

type ReservationQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, viewer Viewer, filter ReservationFilter) ([]*ReservationView, error)
	Calendar(ctx context.Context, zone, date string) ([]CalendarEntry, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
	ApprovedForZoneDate(ctx context.Context, zone, date string) ([]CalendarEntry, error)
}

// CalendarCache is the advisory read-through cache for the calendar
// projection. A miss or a cache failure falls back to the store.
type CalendarCache interface {
	Get(ctx context.Context, zone, date string) ([]CalendarEntry, bool)
	Set(ctx context.Context, zone, date string, entries []CalendarEntry)
}

type reservationQueriesImpl struct {
	repo  ReservationViewRepo
	cache CalendarCache
}

func NewReservationQueries(repo ReservationViewRepo, cache CalendarCache) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, cache: cache}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrViewNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	if !viewer.IsAdmin && view.ResidentEmail != viewer.Email {
		return nil, ErrViewForbidden
	}
	return view, nil
}

// List returns reservations ordered by (date, start time). Residents are
// pinned to their own records regardless of the filter they send.
func (q *reservationQueriesImpl) List(ctx context.Context, viewer Viewer, filter ReservationFilter) ([]*ReservationView, error) {
	if !viewer.IsAdmin {
		filter.ResidentEmail = viewer.Email
	}
	views, err := q.repo.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

// Calendar serves the approved-only projection the mobile calendar renders,
// read-through cached per (zone, date).
func (q *reservationQueriesImpl) Calendar(ctx context.Context, zone, date string) ([]CalendarEntry, error) {
	if entries, ok := q.cache.Get(ctx, zone, date); ok {
		return entries, nil
	}

	entries, err := q.repo.ApprovedForZoneDate(ctx, zone, date)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	q.cache.Set(ctx, zone, date, entries)
	return entries, nil
}
