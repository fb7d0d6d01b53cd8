package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	bk "github.com/roomreserve/room-booking-backend/booking"
)

type BookingService interface {
	GetAllBookings(ctx context.Context) ([]bk.Booking, error)
	FindBookingByID(ctx context.Context, id int64) (bk.Booking, error)
	FindBookingsPerUser(ctx context.Context, userID int64) ([]bk.Booking, error)
	FindBookingsPerRoom(ctx context.Context, roomID int64) ([]bk.Booking, error)
	FindBookingsPerStatus(ctx context.Context, status string) ([]bk.Booking, error)
	FindUserUpcomingBookings(ctx context.Context, userID int64) ([]bk.Booking, error)
	CreateBooking(ctx context.Context, b bk.Booking) (bk.Booking, error)
	UpdateBooking(ctx context.Context, updated bk.Booking) (bk.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
	ApproveBooking(ctx context.Context, id int64) error
	DeleteBooking(ctx context.Context, id int64) error
}

type BookingHandler struct {
	service BookingService
}

func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.GET("/user/:userId", h.GetByUser)
	rg.GET("/user/:userId/future", h.GetUserUpcoming)
	rg.GET("/room/:roomId", h.GetByRoom)
	rg.GET("/status/:status", h.GetByStatus)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id/cancel", h.Cancel)
	rg.PATCH("/:id/approve", h.Approve)
	rg.DELETE("/:id", h.Delete)
}

func (h *BookingHandler) List(c *gin.Context) {
	if bookings, err := h.service.GetAllBookings(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve bookings",
		})
	} else {
		c.IndentedJSON(http.StatusOK, bookings)
	}
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	booking, err := h.service.FindBookingByID(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch booking",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")

	if !ok {
		return
	}

	bookings, err := h.service.FindBookingsPerUser(c.Request.Context(), userID)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get bookings",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetUserUpcoming(c *gin.Context) {
	userID, ok := pathID(c, "userId")

	if !ok {
		return
	}

	bookings, err := h.service.FindUserUpcomingBookings(c.Request.Context(), userID)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get bookings",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetByRoom(c *gin.Context) {
	roomID, ok := pathID(c, "roomId")

	if !ok {
		return
	}

	bookings, err := h.service.FindBookingsPerRoom(c.Request.Context(), roomID)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get bookings",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetByStatus(c *gin.Context) {
	status := c.Param("status")

	bookings, err := h.service.FindBookingsPerStatus(c.Request.Context(), status)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "unknown booking status",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get bookings",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, bookings)
}

// Create never rejects a conflicting request with 409: a detected conflict is
// recorded on the booking and parks it as pending instead.
func (h *BookingHandler) Create(c *gin.Context) {
	var booking bk.Booking

	if err := c.BindJSON(&booking); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	inserted, err := h.service.CreateBooking(c.Request.Context(), booking)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrInvalidBooking) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create booking",
		})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var booking bk.Booking

	if err := c.BindJSON(&booking); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	booking.ID = id

	updated, err := h.service.UpdateBooking(c.Request.Context(), booking)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "booking not found",
			})
		} else if errors.Is(err, bk.ErrInvalidBooking) || errors.Is(err, bk.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to update booking",
			})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, updated)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	err := h.service.CancelBooking(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "booking not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to cancel booking",
			})
		}

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	err := h.service.ApproveBooking(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "booking not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to approve booking",
			})
		}

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	err := h.service.DeleteBooking(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, bk.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "booking not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to delete booking",
			})
		}

		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses a numeric path parameter, responding 400 itself when the
// value is not a valid id.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid " + name,
		})
		return 0, false
	}

	return id, true
}
