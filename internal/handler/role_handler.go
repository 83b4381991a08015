package handler

import (
	"net/http"

	"borrowdesk/internal/middleware"
	"borrowdesk/internal/service"
	"borrowdesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/me/roles", middleware.RequireAuth(), h.MyRoles)
	router.GET("/api/departments", h.ListDepartments)

	roles := router.Group("/api/roles", middleware.RequireAuth())
	{
		roles.POST("", h.AssignRole)
		roles.DELETE("/:userId/:role", h.RevokeRole)
	}
}

// MyRoles resolves the caller's role assignments and capabilities.
// Resolution is fail-soft: on a store error the caller still gets an empty
// role set and keeps browsing in degraded mode.
// @Summary  Resolve my roles
// @Tags     roles
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Response
// @Router   /api/me/roles [get]
func (h *RoleHandler) MyRoles(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "unauthenticated"))
		return
	}

	set := h.roleService.Resolve(c.Request.Context(), userID)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"roles":                set.Roles,
		"departments":          set.Departments,
		"role_labels":          set.RoleLabels(),
		"is_owner":             set.IsOwner(),
		"is_admin":             set.IsAdmin(),
		"is_headmaster":        set.IsHeadmaster(),
		"is_borrower":          set.IsBorrower(),
		"can_manage_inventory": set.CanManageInventory(),
		"can_approve_requests": set.CanApproveRequests(),
		"resolve_error":        set.ResolveError,
	}))
}

func (h *RoleHandler) ListDepartments(c *gin.Context) {
	departments, err := h.roleService.Departments(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, departments))
}

// AssignRole grants a role to a user (admin only)
func (h *RoleHandler) AssignRole(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "unauthenticated"))
		return
	}

	var req service.AssignRoleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	role, err := h.roleService.AssignRole(c.Request.Context(), actorID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, role))
}

// RevokeRole removes a role from a user (admin only)
func (h *RoleHandler) RevokeRole(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "unauthenticated"))
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid user id"))
		return
	}

	if err := h.roleService.RevokeRole(c.Request.Context(), actorID, userID, c.Param("role")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "role revoked"}))
}
