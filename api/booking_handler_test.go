package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomreserve/room-booking-backend/api"
	mock_api "github.com/roomreserve/room-booking-backend/api/mocks"
	bk "github.com/roomreserve/room-booking-backend/booking"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, *gomock.Controller, *mock_api.MockBookingService) {
	t.Helper()
	ctrl := gomock.NewController(t)

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	mockService := mock_api.NewMockBookingService(ctrl)
	handler := api.NewBookingHandler(mockService)
	handler.Register(router.Group("/api/bookings"))

	return router, ctrl, mockService
}

func TestGetAllBookings(t *testing.T) {
	router, ctrl, mockService := setupRouter(t)
	defer ctrl.Finish()

	bookings := []bk.Booking{
		{
			ID:        1,
			UserID:    1,
			RoomID:    7,
			StartTime: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC),
			Status:    "confirmed",
		},
		{
			ID:               2,
			UserID:           2,
			RoomID:           7,
			StartTime:        time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC),
			EndTime:          time.Date(2026, time.March, 2, 11, 30, 0, 0, time.UTC),
			Status:           "pending",
			ConflictDetected: true,
		},
	}

	bookingsJson, _ := json.MarshalIndent(bookings, "", "    ")
	mockService.EXPECT().GetAllBookings(gomock.Any()).Return(bookings, nil).Times(1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/bookings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, string(bookingsJson), w.Body.String())
}

func TestGetAllBookings_Error(t *testing.T) {
	router, ctrl, mockService := setupRouter(t)
	defer ctrl.Finish()

	mockService.EXPECT().GetAllBookings(gomock.Any()).Return(nil, assert.AnError).Times(1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/bookings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, 500, w.Code)
	assert.JSONEq(t, `{"error":"failed to retrieve bookings"}`, w.Body.String())
}

func TestGetBookingByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		b := bk.Booking{ID: 123, UserID: 1, RoomID: 7, Status: "confirmed"}
		bJson, _ := json.MarshalIndent(b, "", "    ")
		mockService.EXPECT().FindBookingByID(gomock.Any(), int64(123)).Return(b, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(bJson), w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().FindBookingByID(gomock.Any(), int64(123)).Return(bk.Booking{}, bk.ErrBookingNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().FindBookingByID(gomock.Any(), gomock.Any()).Times(0)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookings/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"invalid id"}`, w.Body.String())
	})
}

func TestGetBookingsPerStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		bookings := []bk.Booking{{ID: 1, UserID: 1, RoomID: 7, Status: "pending"}}
		bookingsJson, _ := json.MarshalIndent(bookings, "", "    ")
		mockService.EXPECT().FindBookingsPerStatus(gomock.Any(), "pending").Return(bookings, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookings/status/pending", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(bookingsJson), w.Body.String())
	})

	t.Run("unknown status", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().FindBookingsPerStatus(gomock.Any(), "approved").Return(nil, bk.ErrInvalidStatus).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookings/status/approved", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"unknown booking status"}`, w.Body.String())
	})
}

func TestGetUserUpcomingBookings(t *testing.T) {
	router, ctrl, mockService := setupRouter(t)
	defer ctrl.Finish()

	bookings := []bk.Booking{{ID: 3, UserID: 1, RoomID: 7, Status: "confirmed"}}
	bookingsJson, _ := json.MarshalIndent(bookings, "", "    ")
	mockService.EXPECT().FindUserUpcomingBookings(gomock.Any(), int64(1)).Return(bookings, nil).Times(1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/bookings/user/1/future", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, string(bookingsJson), w.Body.String())
}

func TestCreateBooking(t *testing.T) {
	toCreate := bk.Booking{
		UserID:    1,
		RoomID:    7,
		StartTime: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC),
	}

	t.Run("created", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		inserted := toCreate
		inserted.ID = 10
		inserted.Status = "confirmed"

		insertedJson, _ := json.Marshal(inserted)
		mockService.EXPECT().CreateBooking(gomock.Any(), toCreate).Return(inserted, nil).Times(1)

		body, _ := json.Marshal(toCreate)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, 201, w.Code)
		assert.JSONEq(t, string(insertedJson), w.Body.String())
	})

	t.Run("invalid booking", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(bk.Booking{}, bk.ErrInvalidBooking).Times(1)

		body, _ := json.Marshal(toCreate)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Times(0)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewReader([]byte("{not json")))
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"failed to parse JSON body"}`, w.Body.String())
	})
}

func TestUpdateBooking(t *testing.T) {
	updated := bk.Booking{
		ID:        123,
		UserID:    1,
		RoomID:    7,
		StartTime: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC),
		Status:    "pending",
	}

	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		updatedJson, _ := json.MarshalIndent(updated, "", "    ")
		mockService.EXPECT().UpdateBooking(gomock.Any(), updated).Return(updated, nil).Times(1)

		body, _ := json.Marshal(updated)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/bookings/123", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(updatedJson), w.Body.String())
	})

	t.Run("path id wins over body id", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		fromBody := updated
		fromBody.ID = 999

		mockService.EXPECT().UpdateBooking(gomock.Any(), updated).Return(updated, nil).Times(1)

		body, _ := json.Marshal(fromBody)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/bookings/123", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().UpdateBooking(gomock.Any(), updated).Return(bk.Booking{}, bk.ErrBookingNotFound).Times(1)

		body, _ := json.Marshal(updated)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/bookings/123", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})

	t.Run("invalid status", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().UpdateBooking(gomock.Any(), gomock.Any()).Return(bk.Booking{}, bk.ErrInvalidStatus).Times(1)

		body, _ := json.Marshal(updated)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/bookings/123", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().CancelBooking(gomock.Any(), int64(123)).Return(nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/api/bookings/123/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 204, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().CancelBooking(gomock.Any(), int64(123)).Return(bk.ErrBookingNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/api/bookings/123/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})
}

func TestApproveBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().ApproveBooking(gomock.Any(), int64(123)).Return(nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/api/bookings/123/approve", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 204, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().ApproveBooking(gomock.Any(), int64(123)).Return(bk.ErrBookingNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/api/bookings/123/approve", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})
}

func TestDeleteBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().DeleteBooking(gomock.Any(), int64(123)).Return(nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 204, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().DeleteBooking(gomock.Any(), int64(123)).Return(bk.ErrBookingNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/bookings/123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})
}
