package handler

import (
	"net/http"

	"borrowdesk/internal/repository"
	"borrowdesk/pkg/pagination"
	"borrowdesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItemHandler serves the read-only equipment catalogue borrowers browse
// before checking out a request.
type ItemHandler struct {
	items repository.ItemRepository
}

func NewItemHandler(items repository.ItemRepository) *ItemHandler {
	return &ItemHandler{items: items}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/items")
	{
		items.GET("", h.List)
		items.GET("/:id", h.Detail)
	}
}

// List returns items, optionally filtered by department
// @Summary  Browse items
// @Tags     items
// @Produce  json
// @Param    department_id query string false "department filter"
// @Success  200 {object} response.Response
// @Router   /api/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	params := pagination.Parse(c)

	var departmentID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid department_id"))
			return
		}
		departmentID = &parsed
	}

	items, total, err := h.items.List(c.Request.Context(), departmentID, params.Offset, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   items,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

func (h *ItemHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid item id"))
		return
	}

	item, err := h.items.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}
