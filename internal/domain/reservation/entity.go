package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending          = errors.New("reservation is not pending")
	ErrNotApproved         = errors.New("reservation is not approved")
	ErrEmptyRejectReason   = errors.New("rejection reason is required")
	ErrRequesterIncomplete = errors.New("reservation is missing requester information")
)

type Reservation struct {
	id          uuid.UUID
	zone        string
	date        DayDate
	timeRange   TimeRange
	partySize   PartySize
	comment     Comment
	requester   Requester
	status      Status
	respondedBy string
	respondedAt *time.Time
	rejectReason string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewReservation builds a pending request from an authenticated resident.
func NewReservation(
	zone string,
	date DayDate,
	timeRange TimeRange,
	partySize PartySize,
	comment Comment,
	requester Requester,
) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		zone:      zone,
		date:      date,
		timeRange: timeRange,
		partySize: partySize,
		comment:   comment,
		requester: requester,
		status:    StatusPending,
	}
}

func ReconstructReservation(
	id uuid.UUID,
	zone string,
	date DayDate,
	timeRange TimeRange,
	partySize PartySize,
	comment Comment,
	requester Requester,
	status Status,
	respondedBy string,
	respondedAt *time.Time,
	rejectReason string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		zone:         zone,
		date:         date,
		timeRange:    timeRange,
		partySize:    partySize,
		comment:      comment,
		requester:    requester,
		status:       status,
		respondedBy:  respondedBy,
		respondedAt:  respondedAt,
		rejectReason: rejectReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Approve moves a pending request to approved. A record that somehow lost
// its requester fields is rejected with a data-integrity error rather than
// silently approved; the conflict re-check against currently approved
// reservations happens in the usecase layer, inside the transaction.
func (r *Reservation) Approve(adminEmail string, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if !r.requester.IsComplete() {
		return ErrRequesterIncomplete
	}
	r.status = StatusApproved
	r.respondedBy = adminEmail
	r.respondedAt = &now
	return nil
}

// Reject moves a pending request to the terminal rejected state, keeping
// the reason on record.
func (r *Reservation) Reject(reason, adminEmail string, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if reason == "" {
		return ErrEmptyRejectReason
	}
	r.status = StatusRejected
	r.rejectReason = reason
	r.respondedBy = adminEmail
	r.respondedAt = &now
	return nil
}

// Reschedule overwrites the bookable fields of an approved reservation.
// The caller re-runs the overlap check for the new slot first.
func (r *Reservation) Reschedule(
	zone string,
	date DayDate,
	timeRange TimeRange,
	partySize PartySize,
	comment Comment,
) error {
	if r.status != StatusApproved {
		return ErrNotApproved
	}
	r.zone = zone
	r.date = date
	r.timeRange = timeRange
	r.partySize = partySize
	r.comment = comment
	return nil
}

func (r *Reservation) IsPending() bool {
	return r.status == StatusPending
}

func (r *Reservation) IsApproved() bool {
	return r.status == StatusApproved
}

func (r *Reservation) IsOwnedBy(email string) bool {
	return r.requester.Email() == email
}

// StartsAt is the reservation start as an instant in the community's
// timezone.
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.timeRange.StartsAt(r.date, loc)
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) Zone() string           { return r.zone }
func (r *Reservation) Date() DayDate          { return r.date }
func (r *Reservation) TimeRange() TimeRange   { return r.timeRange }
func (r *Reservation) PartySize() PartySize   { return r.partySize }
func (r *Reservation) Comment() Comment       { return r.comment }
func (r *Reservation) Requester() Requester   { return r.requester }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) RespondedBy() string    { return r.respondedBy }
func (r *Reservation) RespondedAt() *time.Time { return r.respondedAt }
func (r *Reservation) RejectReason() string   { return r.rejectReason }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
