package reservation

import (
	"errors"
	"time"
)

// ErrTooLateToCancel fires when the reservation starts in two hours or
// less; at that point the slot is committed and the request is refused.
var ErrTooLateToCancel = errors.New("too late to cancel the reservation")

const (
	cancelRefuseWindow = 2 * time.Hour
	cancelLateWindow   = 24 * time.Hour
)

// CancellationPolicy classifies a cancellation attempt by how far ahead of
// the reservation start it arrives. The windows gate the server, not just
// the client confirmation dialog.
type CancellationPolicy struct {
	loc *time.Location
}

func NewCancellationPolicy(loc *time.Location) *CancellationPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return &CancellationPolicy{loc: loc}
}

// Assess returns the cancellation class or ErrTooLateToCancel.
// Boundaries: exactly 24h ahead is still normal; anything under 24h is
// late; exactly 2h ahead (or less, including already started) is refused.
func (p *CancellationPolicy) Assess(r *Reservation, now time.Time) (CancelClass, error) {
	untilStart := r.StartsAt(p.loc).Sub(now)

	switch {
	case untilStart <= cancelRefuseWindow:
		return "", ErrTooLateToCancel
	case untilStart < cancelLateWindow:
		return CancelLate, nil
	default:
		return CancelNormal, nil
	}
}
