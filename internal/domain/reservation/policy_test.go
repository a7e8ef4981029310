//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"resione-server/internal/domain/reservation"
	"resione-server/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationPolicy(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	policy := reservation.NewCancellationPolicy(loc)

	// Reservation starts 2026-09-15 10:00 local time.
	res, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)
	start := res.StartsAt(loc)

	cases := []struct {
		name      string
		before    time.Duration
		wantClass reservation.CancelClass
		wantErr   error
	}{
		{"well ahead", 72 * time.Hour, reservation.CancelNormal, nil},
		{"exactly 24h ahead is still normal", 24 * time.Hour, reservation.CancelNormal, nil},
		{"just under 24h is late", 24*time.Hour - time.Minute, reservation.CancelLate, nil},
		{"just over 2h is late", 2*time.Hour + time.Minute, reservation.CancelLate, nil},
		{"exactly 2h ahead is refused", 2 * time.Hour, "", reservation.ErrTooLateToCancel},
		{"under 2h is refused", time.Hour, "", reservation.ErrTooLateToCancel},
		{"already started is refused", -time.Hour, "", reservation.ErrTooLateToCancel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			class, err := policy.Assess(res, start.Add(-tc.before))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantClass, class)
		})
	}
}
