package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"resione-server/internal/domain/reservation"
	reqdto "resione-server/internal/handler/dto/request"
	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/metrics"
	"resione-server/internal/pkg/clock"
	"resione-server/internal/pkg/errs"
	"resione-server/internal/usecase/queries"
	"resione-server/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrReservationConflict     = errs.New("reservation conflicts with an approved reservation")
	ErrReservationNotPending   = errs.New("reservation is not pending")
	ErrReservationNotApproved  = errs.New("reservation is not approved")
	ErrReservationTerminal     = errs.New("reservation is already resolved")
	ErrForbidden               = errs.New("reservation belongs to another resident")
	ErrRequesterIncomplete     = errs.New("reservation is missing requester information")
	ErrEmptyRejectReason       = errs.New("rejection reason is required")
	ErrTooLateToCancel         = errs.New("too close to start time to cancel")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CancelResult struct {
	// WasApproved records whether the cancellation freed an approved slot.
	WasApproved bool
	Class       reservation.CancelClass
}

type ReservationCommands interface {
	Submit(ctx context.Context, req reqdto.CreateReservationRequest, actor Actor) (*queries.ReservationView, error)
	Approve(ctx context.Context, id uuid.UUID, actor Actor) (*queries.ReservationView, error)
	Reject(ctx context.Context, id uuid.UUID, reason string, actor Actor) (*queries.ReservationView, error)
	Edit(ctx context.Context, id uuid.UUID, req reqdto.EditReservationRequest, actor Actor) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID, actor Actor) (*CancelResult, error)
}

type reservationCommandsImpl struct {
	uow              shared.UnitOfWork
	reservationRepo  ReservationRepository
	notificationRepo NotificationRepository
	reservationReads ReservationReads
	userReads        UserReads
	calendarCache    CalendarInvalidator
	policy           *reservation.CancellationPolicy
	clock            clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservationRepo ReservationRepository,
	notificationRepo NotificationRepository,
	reservationReads ReservationReads,
	userReads UserReads,
	calendarCache CalendarInvalidator,
	policy *reservation.CancellationPolicy,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:              uow,
		reservationRepo:  reservationRepo,
		notificationRepo: notificationRepo,
		reservationReads: reservationReads,
		userReads:        userReads,
		calendarCache:    calendarCache,
		policy:           policy,
		clock:            clock,
	}
}

// Submit validates the requested slot, checks it against the approved
// reservations for (zone, date) and persists a pending record. Pending
// requests are allowed to overlap each other; only the approved set blocks.
func (r *reservationCommandsImpl) Submit(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	actor Actor,
) (*queries.ReservationView, error) {
	requester, err := r.resolveRequester(ctx, actor)
	if err != nil {
		return nil, err
	}

	res, err := req.ToDomain(requester)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var reservationID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx pg.DBTX) error {
		conflict, checkErr := r.reservationRepo.HasApprovedOverlap(ctx, tx,
			res.Zone(), res.Date().String(),
			res.TimeRange().Start().String(), res.TimeRange().End().String(),
			uuid.Nil)
		if checkErr != nil {
			return errs.Mark(checkErr, ErrDatabaseOperationFailed)
		}
		if conflict {
			metrics.IncConflict("submission")
			return ErrReservationConflict
		}

		id, createErr := r.reservationRepo.Create(ctx, tx, res)
		if createErr != nil {
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		reservationID = id

		return r.enqueueNotification(ctx, tx, "reservation_submitted", res)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncSubmission()
	return r.readBack(ctx, reservationID)
}

// Approve transitions a pending record to approved. The row is locked for
// the duration of the transaction and the overlap test is re-run under that
// lock; the storage-level exclusion constraint backstops any approval that
// still slips through concurrently.
func (r *reservationCommandsImpl) Approve(ctx context.Context, id uuid.UUID, actor Actor) (*queries.ReservationView, error) {
	var zone, date string
	err := r.uow.Within(ctx, func(ctx context.Context, tx pg.DBTX) error {
		res, findErr := r.findForUpdate(ctx, tx, id)
		if findErr != nil {
			return findErr
		}

		if approveErr := res.Approve(actor.Email, r.clock.Now()); approveErr != nil {
			return r.markTransitionErr(approveErr)
		}

		conflict, checkErr := r.reservationRepo.HasApprovedOverlap(ctx, tx,
			res.Zone(), res.Date().String(),
			res.TimeRange().Start().String(), res.TimeRange().End().String(),
			res.ID())
		if checkErr != nil {
			return errs.Mark(checkErr, ErrDatabaseOperationFailed)
		}
		if conflict {
			metrics.IncConflict("approval")
			return ErrReservationConflict
		}

		if saveErr := r.reservationRepo.SaveDecision(ctx, tx, res); saveErr != nil {
			if infra.IsKind(saveErr, infra.KindConflict) {
				metrics.IncConflict("approval")
				return errs.Mark(saveErr, ErrReservationConflict)
			}
			return errs.Mark(saveErr, ErrDatabaseOperationFailed)
		}

		zone, date = res.Zone(), res.Date().String()
		return r.enqueueNotification(ctx, tx, "reservation_approved", res)
	})
	if err != nil {
		return nil, err
	}

	r.calendarCache.Invalidate(ctx, zone, date)
	metrics.IncDecision(reservation.StatusApproved.String())
	return r.readBack(ctx, id)
}

// Reject moves a pending record to the terminal rejected state; the record
// and the reason stay on file for the resident to see.
func (r *reservationCommandsImpl) Reject(ctx context.Context, id uuid.UUID, reason string, actor Actor) (*queries.ReservationView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx pg.DBTX) error {
		res, findErr := r.findForUpdate(ctx, tx, id)
		if findErr != nil {
			return findErr
		}

		if rejectErr := res.Reject(reason, actor.Email, r.clock.Now()); rejectErr != nil {
			return r.markTransitionErr(rejectErr)
		}

		if saveErr := r.reservationRepo.SaveDecision(ctx, tx, res); saveErr != nil {
			return errs.Mark(saveErr, ErrDatabaseOperationFailed)
		}

		return r.enqueueNotification(ctx, tx, "reservation_rejected", res)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncDecision(reservation.StatusRejected.String())
	return r.readBack(ctx, id)
}

// Edit reschedules an approved reservation. The new slot runs the overlap
// test excluding the record's own id, so shrinking or shifting within a free
// window succeeds while colliding with a different approved record fails and
// leaves the original values intact.
func (r *reservationCommandsImpl) Edit(
	ctx context.Context,
	id uuid.UUID,
	req reqdto.EditReservationRequest,
	actor Actor,
) (*queries.ReservationView, error) {
	date, timeRange, partySize, err := req.ParseSlot()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var oldZone, oldDate string
	err = r.uow.Within(ctx, func(ctx context.Context, tx pg.DBTX) error {
		res, findErr := r.findForUpdate(ctx, tx, id)
		if findErr != nil {
			return findErr
		}
		if !actor.IsAdmin() && !res.IsOwnedBy(actor.Email) {
			return ErrForbidden
		}
		oldZone, oldDate = res.Zone(), res.Date().String()

		if reschedErr := res.Reschedule(req.Zone, date, timeRange, partySize, reservation.NewComment(req.Comment)); reschedErr != nil {
			return r.markTransitionErr(reschedErr)
		}

		conflict, checkErr := r.reservationRepo.HasApprovedOverlap(ctx, tx,
			res.Zone(), res.Date().String(),
			res.TimeRange().Start().String(), res.TimeRange().End().String(),
			res.ID())
		if checkErr != nil {
			return errs.Mark(checkErr, ErrDatabaseOperationFailed)
		}
		if conflict {
			metrics.IncConflict("edit")
			return ErrReservationConflict
		}

		if saveErr := r.reservationRepo.SaveFields(ctx, tx, res); saveErr != nil {
			if infra.IsKind(saveErr, infra.KindConflict) {
				metrics.IncConflict("edit")
				return errs.Mark(saveErr, ErrReservationConflict)
			}
			return errs.Mark(saveErr, ErrDatabaseOperationFailed)
		}

		return r.enqueueNotification(ctx, tx, "reservation_rescheduled", res)
	})
	if err != nil {
		return nil, err
	}

	r.calendarCache.Invalidate(ctx, oldZone, oldDate)
	if req.Zone != oldZone || req.Date != oldDate {
		r.calendarCache.Invalidate(ctx, req.Zone, req.Date)
	}
	return r.readBack(ctx, id)
}

// Cancel deletes the record. A pending request can be withdrawn by its owner
// at any time; an approved reservation is gated by the time-to-start policy.
// Rejected records are terminal and cannot be cancelled.
func (r *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor Actor) (*CancelResult, error) {
	result := &CancelResult{}
	var zone, date string
	err := r.uow.Within(ctx, func(ctx context.Context, tx pg.DBTX) error {
		res, findErr := r.findForUpdate(ctx, tx, id)
		if findErr != nil {
			return findErr
		}
		if !actor.IsAdmin() && !res.IsOwnedBy(actor.Email) {
			return ErrForbidden
		}

		switch {
		case res.IsPending():
			// Withdrawal before any decision, no policy applies.
		case res.IsApproved():
			class, policyErr := r.policy.Assess(res, r.clock.Now())
			if policyErr != nil {
				return errs.Mark(policyErr, ErrTooLateToCancel)
			}
			result.WasApproved = true
			result.Class = class
		default:
			return ErrReservationTerminal
		}

		deleted, delErr := r.reservationRepo.Delete(ctx, tx, res.ID())
		if delErr != nil {
			return errs.Mark(delErr, ErrDatabaseOperationFailed)
		}
		if !deleted {
			return ErrReservationNotFound
		}

		zone, date = res.Zone(), res.Date().String()
		return r.enqueueNotification(ctx, tx, "reservation_cancelled", res)
	})
	if err != nil {
		return nil, err
	}

	if result.WasApproved {
		r.calendarCache.Invalidate(ctx, zone, date)
		metrics.IncCancellation(result.Class.String())
	} else {
		metrics.IncCancellation("withdrawal")
	}
	return result, nil
}

// resolveRequester snapshots the authenticated resident's identity fields
// onto the reservation. A profile missing any of the four fields cannot
// submit.
func (r *reservationCommandsImpl) resolveRequester(ctx context.Context, actor Actor) (reservation.Requester, error) {
	view, err := r.userReads.FindByID(ctx, actor.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return reservation.Requester{}, errs.Mark(err, ErrForbidden)
		}
		return reservation.Requester{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	requester, err := reservation.NewRequester(view.Email, view.Name, view.Unit, view.NationalID)
	if err != nil {
		return reservation.Requester{}, errs.Mark(err, ErrRequesterIncomplete)
	}
	return requester, nil
}

func (r *reservationCommandsImpl) findForUpdate(ctx context.Context, tx pg.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := r.reservationRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (r *reservationCommandsImpl) markTransitionErr(err error) error {
	switch {
	case errs.Is(err, reservation.ErrNotPending):
		return errs.Mark(err, ErrReservationNotPending)
	case errs.Is(err, reservation.ErrNotApproved):
		return errs.Mark(err, ErrReservationNotApproved)
	case errs.Is(err, reservation.ErrEmptyRejectReason):
		return errs.Mark(err, ErrEmptyRejectReason)
	case errs.Is(err, reservation.ErrRequesterIncomplete):
		return errs.Mark(err, ErrRequesterIncomplete)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

func (r *reservationCommandsImpl) enqueueNotification(ctx context.Context, tx pg.DBTX, topic string, res *reservation.Reservation) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": res.ID(),
		"zone":           res.Zone(),
		"date":           res.Date().String(),
		"start_time":     res.TimeRange().Start().String(),
		"end_time":       res.TimeRange().End().String(),
		"resident_email": res.Requester().Email(),
		"status":         res.Status().String(),
		"topic":          topic,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := r.notificationRepo.CreateJob(ctx, tx, "email", topic, payload, r.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (r *reservationCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := r.reservationReads.FindByID(ctx, id)
	if err != nil {
		slog.Warn("read-after-write lookup failed", "reservation_id", id, "error", err)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
