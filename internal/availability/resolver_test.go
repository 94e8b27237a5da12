package availability

import (
	"testing"
	"time"

	"stayhaven/internal/models"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, 5, d, 0, 0, 0, 0, time.UTC)
}

func rng(start, end int) DateRange {
	return DateRange{Start: day(start), End: day(end)}
}

func TestDateRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{"identical", rng(1, 5), rng(1, 5), true},
		{"contained", rng(1, 10), rng(3, 5), true},
		{"partial left", rng(1, 5), rng(4, 8), true},
		{"partial right", rng(4, 8), rng(1, 5), true},
		{"single shared night", rng(1, 3), rng(2, 3), true},
		{"adjacent turnover", rng(1, 5), rng(5, 8), false},
		{"adjacent reversed", rng(5, 8), rng(1, 5), false},
		{"disjoint", rng(1, 3), rng(10, 12), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := rng(2, 5)
	assert.True(t, r.Contains(day(2)), "start date is included")
	assert.True(t, r.Contains(day(4)))
	assert.False(t, r.Contains(day(5)), "end date is excluded")
	assert.False(t, r.Contains(day(1)))
}

func TestValidate(t *testing.T) {
	room := &models.Room{ID: 1, Capacity: 4, MinStay: 2, MaxStay: 14, IsAvailable: true}

	occupied := []OccupiedRange{
		{DateRange: rng(10, 13), SourceType: SourceBooking, SourceID: 77},
		{DateRange: rng(20, 22), SourceType: SourceBlock, SourceID: 5},
	}

	t.Run("ok", func(t *testing.T) {
		assert.Nil(t, Validate(room, rng(1, 5), occupied))
	})

	t.Run("invalid range", func(t *testing.T) {
		rej := Validate(room, rng(5, 5), occupied)
		assert.Equal(t, ReasonInvalidRange, rej.Reason)

		rej = Validate(room, rng(5, 3), occupied)
		assert.Equal(t, ReasonInvalidRange, rej.Reason)
	})

	t.Run("below minimum stay", func(t *testing.T) {
		rej := Validate(room, rng(1, 2), occupied)
		assert.Equal(t, ReasonBelowMinimumStay, rej.Reason)
	})

	t.Run("above maximum stay", func(t *testing.T) {
		rej := Validate(room, rng(1, 16), occupied)
		assert.Equal(t, ReasonAboveMaximumStay, rej.Reason)
	})

	t.Run("no maximum when unset", func(t *testing.T) {
		open := &models.Room{ID: 2, MinStay: 1, IsAvailable: true}
		assert.Nil(t, Validate(open, rng(1, 30), nil))
	})

	t.Run("conflict with booking", func(t *testing.T) {
		rej := Validate(room, rng(12, 15), occupied)
		assert.Equal(t, ReasonConflict, rej.Reason)
		assert.NotNil(t, rej.Source)
		assert.Equal(t, SourceBooking, rej.Source.SourceType)
		assert.Equal(t, int64(77), rej.Source.SourceID)
	})

	t.Run("blocked by host block", func(t *testing.T) {
		rej := Validate(room, rng(19, 21), occupied)
		assert.Equal(t, ReasonBlocked, rej.Reason)
		assert.Equal(t, int64(5), rej.Source.SourceID)
	})

	t.Run("same day turnover allowed", func(t *testing.T) {
		// Existing booking ends on the 13th; checking in on the 13th is fine.
		assert.Nil(t, Validate(room, rng(13, 16), occupied))
		// And checking out on the 10th when a booking starts that day.
		assert.Nil(t, Validate(room, rng(8, 10), occupied))
	})

	t.Run("room marked unavailable", func(t *testing.T) {
		closed := &models.Room{ID: 3, MinStay: 1, IsAvailable: false}
		rej := Validate(closed, rng(1, 4), nil)
		assert.Equal(t, ReasonBlocked, rej.Reason)
		assert.Nil(t, rej.Source)
	})
}

func TestNonOverlapping(t *testing.T) {
	ok := []OccupiedRange{
		{DateRange: rng(1, 5)},
		{DateRange: rng(5, 8)},
		{DateRange: rng(9, 12)},
	}
	assert.True(t, NonOverlapping(ok))

	bad := append(ok, OccupiedRange{DateRange: rng(4, 6)})
	assert.False(t, NonOverlapping(bad))
}

func TestRejection_Error(t *testing.T) {
	rej := &Rejection{Reason: ReasonConflict, Source: &OccupiedRange{SourceType: SourceBooking, SourceID: 9}}
	assert.Contains(t, rej.Error(), "conflict")
	assert.Contains(t, rej.Error(), "booking 9")

	bare := &Rejection{Reason: ReasonInvalidRange}
	assert.Contains(t, bare.Error(), "invalid_range")
}
