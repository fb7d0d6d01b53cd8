package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	RoomID           int64     `json:"roomId"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Status           string    `json:"status"` // pending, confirmed, cancelled
	ConflictDetected bool      `json:"conflictDetected"`
}

// ParseStatus validates a status string received from a caller.
func ParseStatus(s string) (string, error) {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return s, nil
	}

	return "", ErrInvalidStatus
}
