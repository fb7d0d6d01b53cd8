package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	us "github.com/roomreserve/room-booking-backend/user"
)

type AccessStore interface {
	GetAllRoles(ctx context.Context) ([]us.Role, error)
	GetRoleByID(ctx context.Context, id int64) (us.Role, error)
	GetPermissionsPerRole(ctx context.Context, roleID int64) ([]us.Permission, error)
	InsertRole(ctx context.Context, role us.Role) (us.Role, error)
	UpdateRole(ctx context.Context, role us.Role) error
	DeleteRole(ctx context.Context, id int64) error
	GetAllPermissions(ctx context.Context) ([]us.Permission, error)
	GetPermissionByID(ctx context.Context, id int64) (us.Permission, error)
	InsertPermission(ctx context.Context, permission us.Permission) (us.Permission, error)
	UpdatePermission(ctx context.Context, permission us.Permission) error
	DeletePermission(ctx context.Context, id int64) error
}

// AccessHandler exposes the role and permission passthrough CRUD. Nothing
// here enforces anything; roles only matter to the booking lifecycle through
// the administrator role name.
type AccessHandler struct {
	store AccessStore
}

func NewAccessHandler(store AccessStore) *AccessHandler {
	return &AccessHandler{store: store}
}

func (h *AccessHandler) RegisterRoles(rg *gin.RouterGroup) {
	rg.GET("", h.ListRoles)
	rg.GET("/:id", h.GetRole)
	rg.GET("/:id/permissions", h.GetRolePermissions)
	rg.POST("", h.CreateRole)
	rg.PUT("/:id", h.UpdateRole)
	rg.DELETE("/:id", h.DeleteRole)
}

func (h *AccessHandler) RegisterPermissions(rg *gin.RouterGroup) {
	rg.GET("", h.ListPermissions)
	rg.GET("/:id", h.GetPermission)
	rg.POST("", h.CreatePermission)
	rg.PUT("/:id", h.UpdatePermission)
	rg.DELETE("/:id", h.DeletePermission)
}

func (h *AccessHandler) ListRoles(c *gin.Context) {
	if roles, err := h.store.GetAllRoles(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve roles",
		})
	} else {
		c.IndentedJSON(http.StatusOK, roles)
	}
}

func (h *AccessHandler) GetRole(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	role, err := h.store.GetRoleByID(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch role"})
		return
	}

	c.IndentedJSON(http.StatusOK, role)
}

func (h *AccessHandler) GetRolePermissions(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	permissions, err := h.store.GetPermissionsPerRole(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch permissions"})
		return
	}

	c.IndentedJSON(http.StatusOK, permissions)
}

func (h *AccessHandler) CreateRole(c *gin.Context) {
	var role us.Role

	if err := c.BindJSON(&role); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	inserted, err := h.store.InsertRole(c.Request.Context(), role)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create role"})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *AccessHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var role us.Role

	if err := c.BindJSON(&role); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	role.ID = id

	if err := h.store.UpdateRole(c.Request.Context(), role); err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update role"})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, role)
}

func (h *AccessHandler) DeleteRole(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	if err := h.store.DeleteRole(c.Request.Context(), id); err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete role"})
		}

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AccessHandler) ListPermissions(c *gin.Context) {
	if permissions, err := h.store.GetAllPermissions(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve permissions",
		})
	} else {
		c.IndentedJSON(http.StatusOK, permissions)
	}
}

func (h *AccessHandler) GetPermission(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	permission, err := h.store.GetPermissionByID(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrPermissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "permission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch permission"})
		return
	}

	c.IndentedJSON(http.StatusOK, permission)
}

func (h *AccessHandler) CreatePermission(c *gin.Context) {
	var permission us.Permission

	if err := c.BindJSON(&permission); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	inserted, err := h.store.InsertPermission(c.Request.Context(), permission)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create permission"})
		return
	}

	c.JSON(http.StatusCreated, inserted)
}

func (h *AccessHandler) UpdatePermission(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var permission us.Permission

	if err := c.BindJSON(&permission); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	permission.ID = id

	if err := h.store.UpdatePermission(c.Request.Context(), permission); err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrPermissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "permission not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update permission"})
		}

		return
	}

	c.IndentedJSON(http.StatusOK, permission)
}

func (h *AccessHandler) DeletePermission(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	if err := h.store.DeletePermission(c.Request.Context(), id); err != nil {
		c.Error(err)
		if errors.Is(err, us.ErrPermissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "permission not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete permission"})
		}

		return
	}

	c.Status(http.StatusNoContent)
}
