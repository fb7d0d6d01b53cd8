package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const bookingColumns = `booking_id, user_id, room_id, start_time, end_time, status, conflict_detected`

type Repository struct{ conn *pgx.Conn }

func NewRepository(conn *pgx.Conn) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) GetAllBookings(ctx context.Context) ([]Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM room_booking.bookings;`

	bookings, err := r.queryBookings(ctx, sql)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	return bookings, nil
}

func (r *Repository) GetBookingByID(ctx context.Context, id int64) (Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM room_booking.bookings WHERE booking_id=$1;`

	var booking Booking
	err := r.conn.QueryRow(ctx, sql, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.ConflictDetected,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to fetch booking with id %v: %w", id, err)
	}

	return booking, nil
}

func (r *Repository) GetBookingsPerUser(ctx context.Context, userID int64) ([]Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM room_booking.bookings WHERE user_id=$1;`

	bookings, err := r.queryBookings(ctx, sql, userID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for user %v: %w", userID, err)
	}

	return bookings, nil
}

func (r *Repository) GetBookingsPerRoom(ctx context.Context, roomID int64) ([]Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM room_booking.bookings WHERE room_id=$1;`

	bookings, err := r.queryBookings(ctx, sql, roomID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for room %v: %w", roomID, err)
	}

	return bookings, nil
}

func (r *Repository) GetBookingsPerStatus(ctx context.Context, status string) ([]Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM room_booking.bookings WHERE status=$1;`

	bookings, err := r.queryBookings(ctx, sql, status)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings with status '%v': %w", status, err)
	}

	return bookings, nil
}

func (r *Repository) GetUserBookingsStartingAfter(ctx context.Context, userID int64, after time.Time) ([]Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM room_booking.bookings WHERE user_id=$1 AND start_time > $2;`

	bookings, err := r.queryBookings(ctx, sql, userID, after)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming bookings for user %v: %w", userID, err)
	}

	return bookings, nil
}

// GetConflictingBookings returns the confirmed bookings of the room that
// collide with [start, end). Touching boundaries collide.
func (r *Repository) GetConflictingBookings(ctx context.Context, roomID int64, start, end time.Time) ([]Booking, error) {
	sql := `
			SELECT ` + bookingColumns + `
			FROM room_booking.bookings
			WHERE room_id=$1 AND status='confirmed'
			AND ((start_time <= $3 AND end_time >= $2) OR (start_time >= $2 AND start_time < $3));
		`

	bookings, err := r.queryBookings(ctx, sql, roomID, start, end)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch conflicting bookings for room %v: %w", roomID, err)
	}

	return bookings, nil
}

func (r *Repository) InsertBooking(ctx context.Context, booking Booking) (Booking, error) {
	sql := `
			INSERT INTO room_booking.bookings(user_id, room_id, start_time, end_time, status, conflict_detected)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING booking_id;
		`

	err := r.conn.QueryRow(ctx, sql,
		booking.UserID,
		booking.RoomID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.ConflictDetected,
	).Scan(&booking.ID)

	if err != nil {
		return Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	return booking, nil
}

func (r *Repository) UpdateBooking(ctx context.Context, booking Booking) error {
	sql := `
			UPDATE room_booking.bookings
			SET
				user_id=$1,
				room_id=$2,
				start_time=$3,
				end_time=$4,
				status=$5,
				conflict_detected=$6
			WHERE booking_id=$7;
		`

	tag, err := r.conn.Exec(ctx, sql,
		booking.UserID,
		booking.RoomID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.ConflictDetected,
		booking.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) SetBookingStatus(ctx context.Context, id int64, status string) error {
	sql := `
			UPDATE room_booking.bookings
			SET status=$1
			WHERE booking_id=$2;
		`

	tag, err := r.conn.Exec(ctx, sql, status, id)

	if err != nil {
		return fmt.Errorf("failed to update booking '%v' status: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) DeleteBooking(ctx context.Context, id int64) error {
	sql := `DELETE FROM room_booking.bookings WHERE booking_id=$1;`

	tag, err := r.conn.Exec(ctx, sql, id)

	if err != nil {
		return fmt.Errorf("failed to delete booking '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) BookingExists(ctx context.Context, id int64) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM room_booking.bookings WHERE booking_id=$1);`

	var exists bool

	if err := r.conn.QueryRow(ctx, sql, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check booking '%v' existence: %w", id, err)
	}

	return exists, nil
}

func (r *Repository) queryBookings(ctx context.Context, sql string, args ...any) ([]Booking, error) {
	rows, err := r.conn.Query(ctx, sql, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []Booking

	for rows.Next() {
		var booking Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.RoomID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.ConflictDetected,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	return bookings, nil
}
