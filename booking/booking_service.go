package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roomreserve/room-booking-backend/room"
	"github.com/roomreserve/room-booking-backend/user"
)

type BookingRepository interface {
	GetAllBookings(ctx context.Context) ([]Booking, error)
	GetBookingByID(ctx context.Context, id int64) (Booking, error)
	GetBookingsPerUser(ctx context.Context, userID int64) ([]Booking, error)
	GetBookingsPerRoom(ctx context.Context, roomID int64) ([]Booking, error)
	GetBookingsPerStatus(ctx context.Context, status string) ([]Booking, error)
	GetUserBookingsStartingAfter(ctx context.Context, userID int64, after time.Time) ([]Booking, error)
	GetConflictingBookings(ctx context.Context, roomID int64, start, end time.Time) ([]Booking, error)
	InsertBooking(ctx context.Context, b Booking) (Booking, error)
	UpdateBooking(ctx context.Context, b Booking) error
	SetBookingStatus(ctx context.Context, id int64, status string) error
	DeleteBooking(ctx context.Context, id int64) error
	BookingExists(ctx context.Context, id int64) (bool, error)
}

type RoomDirectory interface {
	GetRoomByID(ctx context.Context, id int64) (room.Room, error)
}

type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (user.User, error)
}

// Notifier records outbound notifications for booking lifecycle events.
// Delivery itself happens elsewhere.
type Notifier interface {
	NotifyBookingStatus(ctx context.Context, b Booking, roomName string) error
	NotifyApproval(ctx context.Context, b Booking, roomName string) error
}

// Service owns the booking state machine: it derives the initial status on
// creation, flags conflicts, and drives the cancel/approve transitions.
type Service struct {
	repo      BookingRepository
	checker   *AvailabilityChecker
	rooms     RoomDirectory
	users     UserDirectory
	notifier  Notifier
	adminRole string
	locks     *roomLocks
	logger    *slog.Logger
}

type Option func(*Service)

// WithPerRoomLocking serializes the availability check and the subsequent
// write per room. Without it two concurrent overlapping requests can both
// observe "no conflict" and both come out confirmed; the store is not asked
// to prevent that. The lock is process-local, so it only helps single-instance
// deployments.
func WithPerRoomLocking() Option {
	return func(s *Service) { s.locks = newRoomLocks() }
}

func NewService(repo BookingRepository, rooms RoomDirectory, users UserDirectory, notifier Notifier, adminRole string, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		checker:   NewAvailabilityChecker(repo),
		rooms:     rooms,
		users:     users,
		notifier:  notifier,
		adminRole: adminRole,
		logger:    slog.Default().With("component", "booking"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) GetAllBookings(ctx context.Context) ([]Booking, error) {
	return s.repo.GetAllBookings(ctx)
}

func (s *Service) FindBookingByID(ctx context.Context, id int64) (Booking, error) {
	return s.repo.GetBookingByID(ctx, id)
}

func (s *Service) FindBookingsPerUser(ctx context.Context, userID int64) ([]Booking, error) {
	return s.repo.GetBookingsPerUser(ctx, userID)
}

func (s *Service) FindBookingsPerRoom(ctx context.Context, roomID int64) ([]Booking, error) {
	return s.repo.GetBookingsPerRoom(ctx, roomID)
}

func (s *Service) FindBookingsPerStatus(ctx context.Context, status string) ([]Booking, error) {
	status, err := ParseStatus(status)

	if err != nil {
		return nil, err
	}

	return s.repo.GetBookingsPerStatus(ctx, status)
}

func (s *Service) FindUserUpcomingBookings(ctx context.Context, userID int64) ([]Booking, error) {
	return s.repo.GetUserBookingsStartingAfter(ctx, userID, time.Now())
}

// CreateBooking persists a new booking with a derived status. A conflict does
// not reject the request: it parks the booking as pending unless the
// requesting user carries the administrator role. ConflictDetected always
// records the checker's answer, even when an administrator gets confirmed
// anyway.
func (s *Service) CreateBooking(ctx context.Context, booking Booking) (Booking, error) {
	requester, bookedRoom, err := s.resolveRefs(ctx, booking)

	if err != nil {
		return Booking{}, err
	}

	if s.locks != nil {
		defer s.locks.lock(booking.RoomID)()
	}

	hasConflict, err := s.checker.HasConflict(ctx, booking.RoomID, booking.StartTime, booking.EndTime)

	if err != nil {
		return Booking{}, err
	}

	booking.ConflictDetected = hasConflict

	if requester.RoleName == s.adminRole || !hasConflict {
		booking.Status = StatusConfirmed
	} else {
		booking.Status = StatusPending
	}

	inserted, err := s.repo.InsertBooking(ctx, booking)

	if err != nil {
		return Booking{}, err
	}

	if err := s.notifier.NotifyBookingStatus(ctx, inserted, bookedRoom.Name); err != nil {
		s.logger.Warn("failed to record booking notifications", "bookingId", inserted.ID, "err", err)
	}

	return inserted, nil
}

// UpdateBooking re-runs the availability check against the possibly changed
// room and interval and overwrites ConflictDetected. The caller-supplied
// status is persisted as-is: unlike creation, update never re-derives
// confirmed or pending.
func (s *Service) UpdateBooking(ctx context.Context, updated Booking) (Booking, error) {
	if _, err := ParseStatus(updated.Status); err != nil {
		return Booking{}, err
	}

	if _, _, err := s.resolveRefs(ctx, updated); err != nil {
		return Booking{}, err
	}

	exists, err := s.repo.BookingExists(ctx, updated.ID)

	if err != nil {
		return Booking{}, err
	}

	if !exists {
		return Booking{}, ErrBookingNotFound
	}

	if s.locks != nil {
		defer s.locks.lock(updated.RoomID)()
	}

	hasConflict, err := s.checker.HasConflict(ctx, updated.RoomID, updated.StartTime, updated.EndTime)

	if err != nil {
		return Booking{}, err
	}

	updated.ConflictDetected = hasConflict

	if err := s.repo.UpdateBooking(ctx, updated); err != nil {
		return Booking{}, err
	}

	return updated, nil
}

// CancelBooking sets the booking to cancelled. Cancelling an already
// cancelled booking succeeds silently. No conflict re-check, no notification.
func (s *Service) CancelBooking(ctx context.Context, id int64) error {
	err := s.repo.SetBookingStatus(ctx, id, StatusCancelled)

	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	return nil
}

// ApproveBooking confirms the booking regardless of its current status and
// records a fresh confirmation notification pair on top of whatever was
// emitted at creation time.
func (s *Service) ApproveBooking(ctx context.Context, id int64) error {
	booking, err := s.repo.GetBookingByID(ctx, id)

	if err != nil {
		return err
	}

	if err := s.repo.SetBookingStatus(ctx, id, StatusConfirmed); err != nil {
		return err
	}

	booking.Status = StatusConfirmed

	bookedRoom, err := s.rooms.GetRoomByID(ctx, booking.RoomID)

	if err != nil {
		s.logger.Warn("failed to resolve room for approval notification", "bookingId", id, "roomId", booking.RoomID, "err", err)
	}

	if err := s.notifier.NotifyApproval(ctx, booking, bookedRoom.Name); err != nil {
		s.logger.Warn("failed to record approval notifications", "bookingId", id, "err", err)
	}

	return nil
}

// DeleteBooking is an administrative hard delete. It bypasses the state
// machine and emits no notification.
func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	return s.repo.DeleteBooking(ctx, id)
}

func (s *Service) resolveRefs(ctx context.Context, booking Booking) (user.User, room.Room, error) {
	if booking.UserID == 0 || booking.RoomID == 0 {
		return user.User{}, room.Room{}, fmt.Errorf("%w: user and room references are required", ErrInvalidBooking)
	}

	if !booking.EndTime.After(booking.StartTime) {
		return user.User{}, room.Room{}, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidBooking)
	}

	requester, err := s.users.GetUserByID(ctx, booking.UserID)

	if errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, room.Room{}, fmt.Errorf("%w: user %v does not exist", ErrInvalidBooking, booking.UserID)
	}

	if err != nil {
		return user.User{}, room.Room{}, err
	}

	bookedRoom, err := s.rooms.GetRoomByID(ctx, booking.RoomID)

	if errors.Is(err, room.ErrRoomNotFound) {
		return user.User{}, room.Room{}, fmt.Errorf("%w: room %v does not exist", ErrInvalidBooking, booking.RoomID)
	}

	if err != nil {
		return user.User{}, room.Room{}, err
	}

	return requester, bookedRoom, nil
}

type roomLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: map[int64]*sync.Mutex{}}
}

func (r *roomLocks) lock(roomID int64) func() {
	r.mu.Lock()
	l, ok := r.locks[roomID]

	if !ok {
		l = &sync.Mutex{}
		r.locks[roomID] = l
	}

	r.mu.Unlock()

	l.Lock()

	return l.Unlock
}
