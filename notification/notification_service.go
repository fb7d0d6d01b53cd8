package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/roomreserve/room-booking-backend/booking"
)

type NotificationRepository interface {
	GetAllNotifications(ctx context.Context) ([]Notification, error)
	GetNotificationByID(ctx context.Context, id int64) (Notification, error)
	GetNotificationsPerBooking(ctx context.Context, bookingID int64) ([]Notification, error)
	GetNotificationsPerStatus(ctx context.Context, status string) ([]Notification, error)
	InsertNotification(ctx context.Context, n Notification) (Notification, error)
	SetNotificationStatus(ctx context.Context, id int64, status string) error
	DeleteNotification(ctx context.Context, id int64) error
}

// Service records notifications for booking lifecycle events and exposes the
// queue to the external delivery process. Every event produces exactly one
// email and one sms record, both pending; nothing here sends anything.
type Service struct {
	repo NotificationRepository
}

func NewService(repo NotificationRepository) *Service {
	return &Service{repo: repo}
}

// NotifyBookingStatus records the creation-time pair. The message embeds the
// status the lifecycle manager derived, so a parked booking reads "pending"
// and an auto-confirmed one reads "confirmed".
func (s *Service) NotifyBookingStatus(ctx context.Context, b booking.Booking, roomName string) error {
	email := fmt.Sprintf("Your room booking has been %v. Room details: %v, from %v to %v.",
		b.Status, roomName, b.StartTime.Format(time.DateTime), b.EndTime.Format(time.DateTime))
	sms := fmt.Sprintf("Your room booking has been %v. Room: %v", b.Status, roomName)

	return s.recordPair(ctx, b.ID, email, sms)
}

// NotifyApproval records the confirmation pair emitted by an approval. It is
// independent of whatever was recorded at creation time; both pairs persist.
func (s *Service) NotifyApproval(ctx context.Context, b booking.Booking, roomName string) error {
	email := fmt.Sprintf("Your room booking has been confirmed. Room details: %v, from %v to %v.",
		roomName, b.StartTime.Format(time.DateTime), b.EndTime.Format(time.DateTime))
	sms := fmt.Sprintf("Your room booking has been confirmed. Room: %v", roomName)

	return s.recordPair(ctx, b.ID, email, sms)
}

func (s *Service) recordPair(ctx context.Context, bookingID int64, emailMessage, smsMessage string) error {
	_, err := s.repo.InsertNotification(ctx, Notification{
		BookingID: bookingID,
		Channel:   ChannelEmail,
		Message:   emailMessage,
		Status:    StatusPending,
	})

	if err != nil {
		return fmt.Errorf("failed to record email notification: %w", err)
	}

	_, err = s.repo.InsertNotification(ctx, Notification{
		BookingID: bookingID,
		Channel:   ChannelSMS,
		Message:   smsMessage,
		Status:    StatusPending,
	})

	if err != nil {
		return fmt.Errorf("failed to record sms notification: %w", err)
	}

	return nil
}

func (s *Service) GetAllNotifications(ctx context.Context) ([]Notification, error) {
	return s.repo.GetAllNotifications(ctx)
}

func (s *Service) FindNotificationByID(ctx context.Context, id int64) (Notification, error) {
	return s.repo.GetNotificationByID(ctx, id)
}

func (s *Service) FindNotificationsPerBooking(ctx context.Context, bookingID int64) ([]Notification, error) {
	return s.repo.GetNotificationsPerBooking(ctx, bookingID)
}

func (s *Service) FindPendingNotifications(ctx context.Context) ([]Notification, error) {
	return s.repo.GetNotificationsPerStatus(ctx, StatusPending)
}

// CreateNotification is the manual passthrough used by the HTTP surface.
func (s *Service) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	if n.BookingID == 0 {
		return Notification{}, fmt.Errorf("%w: booking reference is required", ErrInvalidNotification)
	}

	if n.Channel != ChannelEmail && n.Channel != ChannelSMS {
		return Notification{}, fmt.Errorf("%w: unknown channel %q", ErrInvalidNotification, n.Channel)
	}

	if n.Status == "" {
		n.Status = StatusPending
	}

	if n.Status != StatusPending && n.Status != StatusSent && n.Status != StatusFailed {
		return Notification{}, fmt.Errorf("%w: unknown status %q", ErrInvalidNotification, n.Status)
	}

	return s.repo.InsertNotification(ctx, n)
}

// MarkNotificationSent is called by the external delivery process.
func (s *Service) MarkNotificationSent(ctx context.Context, id int64) error {
	return s.repo.SetNotificationStatus(ctx, id, StatusSent)
}

// MarkNotificationFailed is called by the external delivery process.
func (s *Service) MarkNotificationFailed(ctx context.Context, id int64) error {
	return s.repo.SetNotificationStatus(ctx, id, StatusFailed)
}

func (s *Service) DeleteNotification(ctx context.Context, id int64) error {
	return s.repo.DeleteNotification(ctx, id)
}
