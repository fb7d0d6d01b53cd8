package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const notificationColumns = `notification_id, booking_id, notification_type, message, status`

type Repository struct{ conn *pgx.Conn }

func NewRepository(conn *pgx.Conn) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) GetAllNotifications(ctx context.Context) ([]Notification, error) {
	sql := `SELECT ` + notificationColumns + ` FROM room_booking.notifications;`

	notifications, err := r.queryNotifications(ctx, sql)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, nil
}

func (r *Repository) GetNotificationByID(ctx context.Context, id int64) (Notification, error) {
	sql := `SELECT ` + notificationColumns + ` FROM room_booking.notifications WHERE notification_id=$1;`

	var notification Notification
	err := r.conn.QueryRow(ctx, sql, id).Scan(
		&notification.ID,
		&notification.BookingID,
		&notification.Channel,
		&notification.Message,
		&notification.Status,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return Notification{}, ErrNotificationNotFound
	}

	if err != nil {
		return Notification{}, fmt.Errorf("failed to fetch notification with id %v: %w", id, err)
	}

	return notification, nil
}

func (r *Repository) GetNotificationsPerBooking(ctx context.Context, bookingID int64) ([]Notification, error) {
	sql := `SELECT ` + notificationColumns + ` FROM room_booking.notifications WHERE booking_id=$1;`

	notifications, err := r.queryNotifications(ctx, sql, bookingID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications for booking %v: %w", bookingID, err)
	}

	return notifications, nil
}

func (r *Repository) GetNotificationsPerStatus(ctx context.Context, status string) ([]Notification, error) {
	sql := `SELECT ` + notificationColumns + ` FROM room_booking.notifications WHERE status=$1;`

	notifications, err := r.queryNotifications(ctx, sql, status)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications with status '%v': %w", status, err)
	}

	return notifications, nil
}

func (r *Repository) InsertNotification(ctx context.Context, notification Notification) (Notification, error) {
	sql := `
			INSERT INTO room_booking.notifications(booking_id, notification_type, message, status)
			VALUES ($1, $2, $3, $4)
			RETURNING notification_id;
		`

	err := r.conn.QueryRow(ctx, sql,
		notification.BookingID,
		notification.Channel,
		notification.Message,
		notification.Status,
	).Scan(&notification.ID)

	if err != nil {
		return Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}

	return notification, nil
}

func (r *Repository) SetNotificationStatus(ctx context.Context, id int64, status string) error {
	sql := `
			UPDATE room_booking.notifications
			SET status=$1
			WHERE notification_id=$2;
		`

	tag, err := r.conn.Exec(ctx, sql, status, id)

	if err != nil {
		return fmt.Errorf("failed to update notification '%v' status: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *Repository) DeleteNotification(ctx context.Context, id int64) error {
	sql := `DELETE FROM room_booking.notifications WHERE notification_id=$1;`

	tag, err := r.conn.Exec(ctx, sql, id)

	if err != nil {
		return fmt.Errorf("failed to delete notification '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *Repository) queryNotifications(ctx context.Context, sql string, args ...any) ([]Notification, error) {
	rows, err := r.conn.Query(ctx, sql, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var notifications []Notification

	for rows.Next() {
		var notification Notification
		err := rows.Scan(
			&notification.ID,
			&notification.BookingID,
			&notification.Channel,
			&notification.Message,
			&notification.Status,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}
