// Package availability holds the pure booking validation logic: date range
// semantics and the overlap resolver. It performs no I/O so the rules can be
// tested exhaustively against in-memory fixtures.
package availability

import "time"

// DateRange is a half-open interval [Start, End): the start date is included,
// the end date is not. Adjacent ranges sharing a boundary date do not overlap,
// which is what permits same-day turnover.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsValid reports whether the range is non-empty and non-inverted.
func (r DateRange) IsValid() bool {
	return r.Start.Before(r.End)
}

// Nights returns the stay length in whole nights.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one night.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Contains reports whether the date falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

type SourceType string

const (
	SourceBooking SourceType = "booking"
	SourceBlock   SourceType = "block"
)

// OccupiedRange is one committed interval on a room's calendar, either a
// non-cancelled booking or a host availability block.
type OccupiedRange struct {
	DateRange
	SourceType SourceType `json:"source_type"`
	SourceID   int64      `json:"source_id"`
}

// NonOverlapping reports whether all ranges are pairwise disjoint. The store
// must preserve this for every room's occupied set.
func NonOverlapping(ranges []OccupiedRange) bool {
	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].Overlaps(ranges[j].DateRange) {
				return false
			}
		}
	}
	return true
}
