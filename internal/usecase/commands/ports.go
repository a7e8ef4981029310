package commands

import (
	"context"
	"time"

	"resione-server/internal/domain/reservation"
	"resione-server/internal/infra/pg"
	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
)

// Actor is the authenticated caller, resolved from the session token by the
// auth middleware. Requester identity on a reservation always comes from
// here, never from the request body.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "administrador"
}

type ReservationRepository interface {
	Create(ctx context.Context, db pg.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, tx pg.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	HasApprovedOverlap(ctx context.Context, db pg.DBTX, zone, date, start, end string, excludeID uuid.UUID) (bool, error)
	SaveDecision(ctx context.Context, tx pg.DBTX, res *reservation.Reservation) error
	SaveFields(ctx context.Context, tx pg.DBTX, res *reservation.Reservation) error
	Delete(ctx context.Context, db pg.DBTX, id uuid.UUID) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx pg.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

// ReservationReads is the read-after-write path back to the read model.
type ReservationReads interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type UserReads interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error)
}

// CalendarInvalidator drops cached calendar projections for a (zone, date)
// whose approved set changed. Failures degrade to a cache miss.
type CalendarInvalidator interface {
	Invalidate(ctx context.Context, zone, date string)
}
