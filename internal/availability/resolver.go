package availability

import (
	"fmt"

	"stayhaven/internal/models"
)

type Reason string

const (
	ReasonInvalidRange     Reason = "invalid_range"
	ReasonBelowMinimumStay Reason = "below_minimum_stay"
	ReasonAboveMaximumStay Reason = "above_maximum_stay"
	ReasonConflict         Reason = "conflict"
	ReasonBlocked          Reason = "blocked"
)

// Rejection is a structured validation failure. For conflicts and blocks the
// Source field names the occupied range that got in the way.
type Rejection struct {
	Reason Reason
	Source *OccupiedRange
}

func (r *Rejection) Error() string {
	if r.Source != nil {
		return fmt.Sprintf("booking rejected: %s (%s %d)", r.Reason, r.Source.SourceType, r.Source.SourceID)
	}
	return fmt.Sprintf("booking rejected: %s", r.Reason)
}

// Validate decides whether a proposed stay may be placed on the room given its
// currently occupied ranges. It returns nil when the booking is acceptable.
//
// Checks run in order: range sanity, stay-length constraints, overlap against
// each occupied range, then the room's own availability flag. An overlap with
// a booking yields a conflict; an overlap with a host block yields blocked.
// A checkout date equal to an existing check-in is not an overlap.
func Validate(room *models.Room, proposed DateRange, occupied []OccupiedRange) *Rejection {
	if !proposed.IsValid() {
		return &Rejection{Reason: ReasonInvalidRange}
	}

	nights := proposed.Nights()
	if room.MinStay > 0 && nights < room.MinStay {
		return &Rejection{Reason: ReasonBelowMinimumStay}
	}
	if room.MaxStay > 0 && nights > room.MaxStay {
		return &Rejection{Reason: ReasonAboveMaximumStay}
	}

	for i := range occupied {
		if !proposed.Overlaps(occupied[i].DateRange) {
			continue
		}
		src := occupied[i]
		if src.SourceType == SourceBlock {
			return &Rejection{Reason: ReasonBlocked, Source: &src}
		}
		return &Rejection{Reason: ReasonConflict, Source: &src}
	}

	if !room.IsAvailable {
		return &Rejection{Reason: ReasonBlocked}
	}

	return nil
}
