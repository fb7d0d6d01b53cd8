package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	us "github.com/roomreserve/room-booking-backend/user"
)

type UserStore interface {
	GetAllUsers(ctx context.Context) ([]us.User, error)
	GetUserByID(ctx context.Context, id int64) (us.User, error)
	GetUserByUsername(ctx context.Context, username string) (us.User, error)
	UserExistsByUsername(ctx context.Context, username string) (bool, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	InsertUser(ctx context.Context, user us.User) (us.User, error)
	UpdateUser(ctx context.Context, user us.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type UserHandler struct {
	store UserStore
}

func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.GET("/username/:username", h.GetByUsername)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	if users, err := h.store.GetAllUsers(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve users",
		})
	} else {
		c.IndentedJSON(http.StatusOK, users)
	}
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "user not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch user",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, user)
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	username := c.Param("username")

	user, err := h.store.GetUserByUsername(c.Request.Context(), username)

	if err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "user not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch user",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var user us.User

	if err := c.BindJSON(&user); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	if taken, err := h.store.UserExistsByUsername(c.Request.Context(), user.Username); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	} else if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}

	if taken, err := h.store.UserExistsByEmail(c.Request.Context(), user.Email); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	} else if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "email already taken"})
		return
	}

	inserted, err := h.store.InsertUser(c.Request.Context(), user)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create user",
		})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var user us.User

	if err := c.BindJSON(&user); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	// the username may only collide with the user being updated
	existing, err := h.store.GetUserByUsername(c.Request.Context(), user.Username)

	if err != nil && !errors.Is(err, us.ErrUserNotFound) {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	if err == nil && existing.ID != id {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}

	user.ID = id

	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "user not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to update user",
			})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "user not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to delete user",
			})
		}

		return
	}

	c.Status(http.StatusNoContent)
}
