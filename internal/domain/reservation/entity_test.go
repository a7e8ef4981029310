//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"resione-server/internal/domain/reservation"
	"resione-server/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	actual, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, actual.ID())
	assert.Equal(t, reservation.StatusPending, actual.Status())
	assert.True(t, actual.IsPending())
	assert.False(t, actual.IsApproved())
	assert.Empty(t, actual.RespondedBy())
	assert.Nil(t, actual.RespondedAt())
}

func TestApprove(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	t.Run("pending reservation is approved", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Approve("admin@example.com", now))
		assert.Equal(t, reservation.StatusApproved, res.Status())
		assert.Equal(t, "admin@example.com", res.RespondedBy())
		require.NotNil(t, res.RespondedAt())
		assert.Equal(t, now, *res.RespondedAt())
	})

	t.Run("approving twice fails", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Approve("admin@example.com", now))
		assert.ErrorIs(t, res.Approve("admin@example.com", now), reservation.ErrNotPending)
	})

	t.Run("rejected reservation cannot be approved", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Reject("no disponible", "admin@example.com", now))
		assert.ErrorIs(t, res.Approve("admin@example.com", now), reservation.ErrNotPending)
	})

	t.Run("incomplete requester row is refused", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		full, err := b.BuildDomain()
		require.NoError(t, err)

		res := reservation.ReconstructReservation(
			full.ID(), full.Zone(), full.Date(), full.TimeRange(), full.PartySize(),
			full.Comment(),
			reservation.ReconstructRequester(b.ResidentEmail, "", b.ResidentUnit, b.ResidentNationalID),
			reservation.StatusPending, "", nil, "",
			time.Now(), time.Now(),
		)
		assert.ErrorIs(t, res.Approve("admin@example.com", now), reservation.ErrRequesterIncomplete)
		assert.True(t, res.IsPending())
	})
}

func TestReject(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	t.Run("pending reservation is rejected with reason", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Reject("el salón está en mantenimiento", "admin@example.com", now))
		assert.Equal(t, reservation.StatusRejected, res.Status())
		assert.Equal(t, "el salón está en mantenimiento", res.RejectReason())
		assert.Equal(t, "admin@example.com", res.RespondedBy())
	})

	t.Run("reason is required", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, res.Reject("", "admin@example.com", now), reservation.ErrEmptyRejectReason)
		assert.True(t, res.IsPending())
	})

	t.Run("approved reservation cannot be rejected", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Approve("admin@example.com", now))
		assert.ErrorIs(t, res.Reject("tarde", "admin@example.com", now), reservation.ErrNotPending)
	})
}

func TestReschedule(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	newDate, _ := reservation.NewDayDate("2026-09-20")
	newStart, _ := reservation.NewMinuteTime("14:00")
	newEnd, _ := reservation.NewMinuteTime("16:00")
	newRange, _ := reservation.NewTimeRange(newStart, newEnd)
	newSize, _ := reservation.NewPartySize(12)

	t.Run("approved reservation is rescheduled", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, res.Approve("admin@example.com", now))

		require.NoError(t, res.Reschedule("BBQ", newDate, newRange, newSize, reservation.NewComment("asado")))
		assert.Equal(t, "BBQ", res.Zone())
		assert.Equal(t, "2026-09-20", res.Date().String())
		assert.Equal(t, "14:00", res.TimeRange().Start().String())
		assert.Equal(t, 12, res.PartySize().Int())
	})

	t.Run("pending reservation cannot be rescheduled", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		err = res.Reschedule("BBQ", newDate, newRange, newSize, reservation.NewComment(""))
		assert.ErrorIs(t, err, reservation.ErrNotApproved)
		assert.Equal(t, "Salón Social", res.Zone())
	})
}

func TestIsOwnedBy(t *testing.T) {
	res, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)

	assert.True(t, res.IsOwnedBy("maria@example.com"))
	assert.False(t, res.IsOwnedBy("otro@example.com"))
}
