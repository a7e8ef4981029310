//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"resione-server/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) reservation.TimeRange {
	t.Helper()
	s, err := reservation.NewMinuteTime(start)
	require.NoError(t, err)
	e, err := reservation.NewMinuteTime(end)
	require.NoError(t, err)
	r, err := reservation.NewTimeRange(s, e)
	require.NoError(t, err)
	return r
}

func TestDayDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := reservation.NewDayDate("2026-06-01")
		require.NoError(t, err)
		assert.Equal(t, "2026-06-01", d.String())
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, v := range []string{"", "2026-6-1", "01-06-2026", "2026-13-01", "2026-02-30", "tomorrow"} {
			_, err := reservation.NewDayDate(v)
			assert.ErrorIs(t, err, reservation.ErrInvalidDate, v)
		}
	})
}

func TestMinuteTime(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		m, err := reservation.NewMinuteTime("09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", m.String())
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, v := range []string{"", "9:30", "09:5", "009:30", "24:00", "10:60", "10h30"} {
			_, err := reservation.NewMinuteTime(v)
			assert.ErrorIs(t, err, reservation.ErrInvalidTime, v)
		}
	})
}

func TestTimeRange(t *testing.T) {
	t.Run("end must be after start", func(t *testing.T) {
		s, _ := reservation.NewMinuteTime("12:00")
		e, _ := reservation.NewMinuteTime("12:00")
		_, err := reservation.NewTimeRange(s, e)
		assert.ErrorIs(t, err, reservation.ErrInvalidTimeRange)

		e2, _ := reservation.NewMinuteTime("11:00")
		_, err = reservation.NewTimeRange(s, e2)
		assert.ErrorIs(t, err, reservation.ErrInvalidTimeRange)
	})

	t.Run("overlap is half-open", func(t *testing.T) {
		existing := mustRange(t, "10:00", "12:00")

		cases := []struct {
			name     string
			other    reservation.TimeRange
			overlaps bool
		}{
			{"contained", mustRange(t, "10:30", "11:30"), true},
			{"straddles end", mustRange(t, "11:00", "13:00"), true},
			{"straddles start", mustRange(t, "09:00", "10:30"), true},
			{"covers", mustRange(t, "09:00", "13:00"), true},
			{"identical", mustRange(t, "10:00", "12:00"), true},
			{"touches end boundary", mustRange(t, "12:00", "13:00"), false},
			{"touches start boundary", mustRange(t, "09:00", "10:00"), false},
			{"disjoint after", mustRange(t, "13:00", "14:00"), false},
			{"disjoint before", mustRange(t, "08:00", "09:00"), false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlaps, existing.Overlaps(tc.other))
				assert.Equal(t, tc.overlaps, tc.other.Overlaps(existing))
			})
		}
	})

	t.Run("StartsAt resolves in the given timezone", func(t *testing.T) {
		loc, err := time.LoadLocation("America/Bogota")
		require.NoError(t, err)
		date, _ := reservation.NewDayDate("2026-06-01")
		r := mustRange(t, "10:00", "12:00")

		at := r.StartsAt(date, loc)
		assert.Equal(t, 2026, at.Year())
		assert.Equal(t, time.June, at.Month())
		assert.Equal(t, 1, at.Day())
		assert.Equal(t, 10, at.Hour())
		assert.Equal(t, loc, at.Location())
	})
}

func TestPartySize(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := reservation.NewPartySize(n)
		assert.ErrorIs(t, err, reservation.ErrInvalidPartySize)
	}
	p, err := reservation.NewPartySize(1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Int())
}

func TestRequester(t *testing.T) {
	t.Run("all four fields required", func(t *testing.T) {
		_, err := reservation.NewRequester("a@b.co", "Ana", "101", "")
		assert.ErrorIs(t, err, reservation.ErrIncompleteRequester)

		_, err = reservation.NewRequester("", "Ana", "101", "123")
		assert.ErrorIs(t, err, reservation.ErrIncompleteRequester)

		_, err = reservation.NewRequester("a@b.co", "   ", "101", "123")
		assert.ErrorIs(t, err, reservation.ErrIncompleteRequester)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		r, err := reservation.NewRequester(" a@b.co ", " Ana ", " 101 ", " 123 ")
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", r.Email())
		assert.Equal(t, "Ana", r.Name())
		assert.True(t, r.IsComplete())
	})

	t.Run("reconstruct skips the completeness check", func(t *testing.T) {
		r := reservation.ReconstructRequester("a@b.co", "", "", "")
		assert.False(t, r.IsComplete())
	})
}
