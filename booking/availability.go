package booking

import (
	"context"
	"time"
)

// ConflictFinder is the slice of the booking store the availability check
// needs: confirmed bookings of a room that collide with an interval.
type ConflictFinder interface {
	GetConflictingBookings(ctx context.Context, roomID int64, start, end time.Time) ([]Booking, error)
}

// AvailabilityChecker answers whether a room is already taken for a time
// interval. It is a pure query, it never writes.
type AvailabilityChecker struct {
	finder ConflictFinder
}

func NewAvailabilityChecker(finder ConflictFinder) *AvailabilityChecker {
	return &AvailabilityChecker{finder: finder}
}

// HasConflict reports whether any confirmed booking of the room overlaps the
// requested [start, end) interval. The returned rows are filtered through
// Overlaps again, so a finder that returns a superset of candidates still
// yields a correct answer.
func (c *AvailabilityChecker) HasConflict(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	candidates, err := c.finder.GetConflictingBookings(ctx, roomID, start, end)

	if err != nil {
		return false, err
	}

	for _, b := range candidates {
		if b.Status == StatusConfirmed && Overlaps(b.StartTime, b.EndTime, start, end) {
			return true, nil
		}
	}

	return false, nil
}

// Overlaps reports whether an existing booking [s, e) collides with a
// requested [start, end). Touching boundaries count: a booking ending at
// 11:00 blocks a request starting at 11:00.
func Overlaps(s, e, start, end time.Time) bool {
	if !s.After(end) && !e.Before(start) {
		return true
	}

	return !s.Before(start) && s.Before(end)
}
