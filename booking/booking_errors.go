package booking

import "errors"

var ErrBookingNotFound = errors.New("booking not found")

var ErrInvalidStatus = errors.New("invalid booking status")

var ErrInvalidBooking = errors.New("invalid booking request")
