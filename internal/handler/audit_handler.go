package handler

import (
	"net/http"

	"borrowdesk/internal/middleware"
	"borrowdesk/internal/model"
	"borrowdesk/internal/service"
	"borrowdesk/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/audits", middleware.RequireAuth(), h.List)
}

// List returns the audit trail, admin only
// @Summary  List audit entries
// @Tags     audits
// @Produce  json
// @Param    action query string false "filter by action"
// @Success  200 {object} response.Response
// @Router   /api/audits [get]
func (h *AuditHandler) List(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	params := pagination.Parse(c)

	entries, total, err := h.auditService.List(c.Request.Context(), actorID, c.Query("action"), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   entries,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}
