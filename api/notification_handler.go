package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	nt "github.com/roomreserve/room-booking-backend/notification"
)

type NotificationService interface {
	GetAllNotifications(ctx context.Context) ([]nt.Notification, error)
	FindNotificationByID(ctx context.Context, id int64) (nt.Notification, error)
	FindNotificationsPerBooking(ctx context.Context, bookingID int64) ([]nt.Notification, error)
	FindPendingNotifications(ctx context.Context) ([]nt.Notification, error)
	CreateNotification(ctx context.Context, n nt.Notification) (nt.Notification, error)
	MarkNotificationSent(ctx context.Context, id int64) error
	MarkNotificationFailed(ctx context.Context, id int64) error
	DeleteNotification(ctx context.Context, id int64) error
}

type NotificationHandler struct {
	service NotificationService
}

func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/pending", h.ListPending)
	rg.GET("/:id", h.GetByID)
	rg.GET("/booking/:bookingId", h.GetByBooking)
	rg.POST("", h.Create)
	rg.PATCH("/:id/mark-sent", h.MarkSent)
	rg.PATCH("/:id/mark-failed", h.MarkFailed)
	rg.DELETE("/:id", h.Delete)
}

func (h *NotificationHandler) List(c *gin.Context) {
	if notifications, err := h.service.GetAllNotifications(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve notifications",
		})
	} else {
		c.IndentedJSON(http.StatusOK, notifications)
	}
}

func (h *NotificationHandler) ListPending(c *gin.Context) {
	if notifications, err := h.service.FindPendingNotifications(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve pending notifications",
		})
	} else {
		c.IndentedJSON(http.StatusOK, notifications)
	}
}

func (h *NotificationHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	notification, err := h.service.FindNotificationByID(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, nt.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "notification not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch notification",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, notification)
}

func (h *NotificationHandler) GetByBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "bookingId")

	if !ok {
		return
	}

	notifications, err := h.service.FindNotificationsPerBooking(c.Request.Context(), bookingID)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get notifications",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var notification nt.Notification

	if err := c.BindJSON(&notification); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	inserted, err := h.service.CreateNotification(c.Request.Context(), notification)

	if err != nil {
		c.Error(err)
		if errors.Is(err, nt.ErrInvalidNotification) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create notification",
		})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *NotificationHandler) MarkSent(c *gin.Context) {
	h.setStatus(c, h.service.MarkNotificationSent)
}

func (h *NotificationHandler) MarkFailed(c *gin.Context) {
	h.setStatus(c, h.service.MarkNotificationFailed)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	h.setStatus(c, h.service.DeleteNotification)
}

func (h *NotificationHandler) setStatus(c *gin.Context, op func(context.Context, int64) error) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	err := op(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, nt.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "notification not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to update notification",
			})
		}

		return
	}

	c.Status(http.StatusNoContent)
}
