package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	bk "github.com/roomreserve/room-booking-backend/booking"
	bk_mocks "github.com/roomreserve/room-booking-backend/booking/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newChecker(t *testing.T) (*gomock.Controller, *bk_mocks.MockConflictFinder, *bk.AvailabilityChecker, context.Context) {
	t.Helper()
	ctrl := gomock.NewController(t)

	finder := bk_mocks.NewMockConflictFinder(ctrl)
	checker := bk.NewAvailabilityChecker(finder)

	return ctrl, finder, checker, context.Background()
}

func TestHasConflict(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	at := func(hour, min int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}

	confirmed := bk.Booking{
		ID:        1,
		UserID:    1,
		RoomID:    7,
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
		Status:    bk.StatusConfirmed,
	}

	t.Run("overlapping confirmed booking", func(t *testing.T) {
		ctrl, finder, checker, ctx := newChecker(t)
		defer ctrl.Finish()

		finder.EXPECT().GetConflictingBookings(ctx, int64(7), at(10, 30), at(11, 30)).
			Return([]bk.Booking{confirmed}, nil).Times(1)

		hasConflict, err := checker.HasConflict(ctx, 7, at(10, 30), at(11, 30))

		require.Nil(t, err)
		require.True(t, hasConflict)
	})

	t.Run("touching intervals conflict", func(t *testing.T) {
		ctrl, finder, checker, ctx := newChecker(t)
		defer ctrl.Finish()

		finder.EXPECT().GetConflictingBookings(ctx, int64(7), at(11, 0), at(12, 0)).
			Return([]bk.Booking{confirmed}, nil).Times(1)

		hasConflict, err := checker.HasConflict(ctx, 7, at(11, 0), at(12, 0))

		require.Nil(t, err)
		require.True(t, hasConflict)
	})

	t.Run("contained interval conflicts", func(t *testing.T) {
		ctrl, finder, checker, ctx := newChecker(t)
		defer ctrl.Finish()

		finder.EXPECT().GetConflictingBookings(ctx, int64(7), at(10, 15), at(10, 45)).
			Return([]bk.Booking{confirmed}, nil).Times(1)

		hasConflict, err := checker.HasConflict(ctx, 7, at(10, 15), at(10, 45))

		require.Nil(t, err)
		require.True(t, hasConflict)
	})

	t.Run("pending booking never blocks", func(t *testing.T) {
		ctrl, finder, checker, ctx := newChecker(t)
		defer ctrl.Finish()

		pending := confirmed
		pending.Status = bk.StatusPending

		finder.EXPECT().GetConflictingBookings(ctx, int64(7), at(10, 30), at(11, 30)).
			Return([]bk.Booking{pending}, nil).Times(1)

		hasConflict, err := checker.HasConflict(ctx, 7, at(10, 30), at(11, 30))

		require.Nil(t, err)
		require.False(t, hasConflict)
	})

	t.Run("disjoint interval does not conflict", func(t *testing.T) {
		ctrl, finder, checker, ctx := newChecker(t)
		defer ctrl.Finish()

		finder.EXPECT().GetConflictingBookings(ctx, int64(7), at(14, 0), at(15, 0)).
			Return([]bk.Booking{confirmed}, nil).Times(1)

		hasConflict, err := checker.HasConflict(ctx, 7, at(14, 0), at(15, 0))

		require.Nil(t, err)
		require.False(t, hasConflict)
	})

	t.Run("no candidates", func(t *testing.T) {
		ctrl, finder, checker, ctx := newChecker(t)
		defer ctrl.Finish()

		finder.EXPECT().GetConflictingBookings(ctx, int64(7), at(10, 30), at(11, 30)).
			Return(nil, nil).Times(1)

		hasConflict, err := checker.HasConflict(ctx, 7, at(10, 30), at(11, 30))

		require.Nil(t, err)
		require.False(t, hasConflict)
	})

	t.Run("finder error", func(t *testing.T) {
		ctrl, finder, checker, ctx := newChecker(t)
		defer ctrl.Finish()

		finder.EXPECT().GetConflictingBookings(ctx, int64(7), at(10, 30), at(11, 30)).
			Return(nil, errors.New("repo error")).Times(1)

		hasConflict, err := checker.HasConflict(ctx, 7, at(10, 30), at(11, 30))

		require.Error(t, err)
		require.False(t, hasConflict)
	})
}

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	at := func(hour, min int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}

	cases := []struct {
		name             string
		s, e, start, end time.Time
		want             bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"existing ends at requested start", at(10, 0), at(11, 0), at(11, 0), at(12, 0), true},
		{"existing starts at requested end", at(11, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"identical intervals", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"existing inside requested", at(10, 15), at(10, 45), at(10, 0), at(11, 0), true},
		{"existing before requested", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
		{"existing after requested", at(12, 0), at(13, 0), at(10, 0), at(11, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, bk.Overlaps(tc.s, tc.e, tc.start, tc.end))
		})
	}
}
