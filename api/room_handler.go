package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	rm "github.com/roomreserve/room-booking-backend/room"
)

type RoomStore interface {
	GetAllRooms(ctx context.Context) ([]rm.Room, error)
	GetRoomByID(ctx context.Context, id int64) (rm.Room, error)
	GetAvailableRooms(ctx context.Context) ([]rm.Room, error)
	GetRoomsWithMinCapacity(ctx context.Context, capacity int) ([]rm.Room, error)
	GetRoomsFreeBetween(ctx context.Context, start, end time.Time) ([]rm.Room, error)
	GetEquipmentPerRoom(ctx context.Context, roomID int64) ([]rm.Equipment, error)
	SaveEquipment(ctx context.Context, item rm.Equipment) (rm.Equipment, error)
	GetSchedulesPerRoom(ctx context.Context, roomID int64) ([]rm.Schedule, error)
	GetSchedulesPerRoomBetween(ctx context.Context, roomID int64, start, end time.Time) ([]rm.Schedule, error)
	SaveSchedule(ctx context.Context, schedule rm.Schedule) (rm.Schedule, error)
	InsertRoom(ctx context.Context, room rm.Room) (rm.Room, error)
	UpdateRoom(ctx context.Context, room rm.Room) error
	DeleteRoom(ctx context.Context, id int64) error
}

type RoomHandler struct {
	store RoomStore
}

func NewRoomHandler(store RoomStore) *RoomHandler {
	return &RoomHandler{store: store}
}

func (h *RoomHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/available", h.ListAvailable)
	rg.GET("/available-between", h.ListFreeBetween)
	rg.GET("/capacity/:capacity", h.ListByMinCapacity)
	rg.GET("/:id", h.GetByID)
	rg.GET("/:id/equipment", h.GetEquipment)
	rg.POST("/:id/equipment", h.AddEquipment)
	rg.GET("/:id/schedules", h.GetSchedules)
	rg.POST("/:id/schedules", h.AddSchedule)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *RoomHandler) List(c *gin.Context) {
	if rooms, err := h.store.GetAllRooms(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve rooms",
		})
	} else {
		c.IndentedJSON(http.StatusOK, rooms)
	}
}

func (h *RoomHandler) ListAvailable(c *gin.Context) {
	if rooms, err := h.store.GetAvailableRooms(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve available rooms",
		})
	} else {
		c.IndentedJSON(http.StatusOK, rooms)
	}
}

func (h *RoomHandler) ListFreeBetween(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse start"})
		return
	}

	end, err := time.Parse(time.RFC3339, c.Query("end"))

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse end"})
		return
	}

	rooms, err := h.store.GetRoomsFreeBetween(c.Request.Context(), start, end)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve free rooms",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, rooms)
}

func (h *RoomHandler) ListByMinCapacity(c *gin.Context) {
	capacity, err := strconv.Atoi(c.Param("capacity"))

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid capacity"})
		return
	}

	rooms, err := h.store.GetRoomsWithMinCapacity(c.Request.Context(), capacity)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve rooms",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	room, err := h.store.GetRoomByID(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, rm.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch room",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, room)
}

func (h *RoomHandler) GetEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	equipment, err := h.store.GetEquipmentPerRoom(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch equipment",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, equipment)
}

func (h *RoomHandler) AddEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var item rm.Equipment

	if err := c.BindJSON(&item); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	item.RoomID = id

	inserted, err := h.store.SaveEquipment(c.Request.Context(), item)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to add equipment",
		})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

// GetSchedules lists the fixed schedule blocks of a room, optionally limited
// to a window via start/end query parameters (RFC 3339).
func (h *RoomHandler) GetSchedules(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var (
		schedules []rm.Schedule
		err       error
	)

	if c.Query("start") != "" || c.Query("end") != "" {
		start, perr := time.Parse(time.RFC3339, c.Query("start"))

		if perr != nil {
			c.Error(perr)
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse start"})
			return
		}

		end, perr := time.Parse(time.RFC3339, c.Query("end"))

		if perr != nil {
			c.Error(perr)
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse end"})
			return
		}

		schedules, err = h.store.GetSchedulesPerRoomBetween(c.Request.Context(), id, start, end)
	} else {
		schedules, err = h.store.GetSchedulesPerRoom(c.Request.Context(), id)
	}

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch schedules",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, schedules)
}

func (h *RoomHandler) AddSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var schedule rm.Schedule

	if err := c.BindJSON(&schedule); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	schedule.RoomID = id

	inserted, err := h.store.SaveSchedule(c.Request.Context(), schedule)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to add schedule",
		})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *RoomHandler) Create(c *gin.Context) {
	var room rm.Room

	if err := c.BindJSON(&room); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	inserted, err := h.store.InsertRoom(c.Request.Context(), room)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create room",
		})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var room rm.Room

	if err := c.BindJSON(&room); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	room.ID = id

	if err := h.store.UpdateRoom(c.Request.Context(), room); err != nil {
		c.Error(err)
		if errors.Is(err, rm.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "room not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to update room",
			})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, room)
}

func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	if err := h.store.DeleteRoom(c.Request.Context(), id); err != nil {
		c.Error(err)
		if errors.Is(err, rm.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "room not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to delete room",
			})
		}

		return
	}

	c.Status(http.StatusNoContent)
}
