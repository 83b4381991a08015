package handler

import (
	"net/http"

	"borrowdesk/internal/middleware"
	"borrowdesk/internal/model"
	"borrowdesk/internal/service"
	"borrowdesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LetterHandler fronts the document bridge: manual (re)generation for
// approvers plus the public verification endpoint printed on the letter's
// QR code.
type LetterHandler struct {
	letterService service.LetterService
	roleService   service.RoleService
}

func NewLetterHandler(letterService service.LetterService, roleService service.RoleService) *LetterHandler {
	return &LetterHandler{letterService: letterService, roleService: roleService}
}

func (h *LetterHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/requests/:id/letter", middleware.RequireAuth(), h.Generate)
	// Verification is unauthenticated on purpose: anyone scanning the QR
	// code must be able to confirm the letter is genuine.
	router.GET("/verify/:id", h.Verify)
}

// Generate triggers letter generation for an approved request
// @Summary  Generate loan letter
// @Tags     letters
// @Accept   json
// @Produce  json
// @Param    id path string true "request id"
// @Success  200 {object} response.Response
// @Router   /api/requests/{id}/letter [post]
func (h *LetterHandler) Generate(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	set := h.roleService.Resolve(c.Request.Context(), actorID)
	if !set.CanApproveRequests() {
		fail(c, model.ErrUnauthorized)
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request id"))
		return
	}

	var body struct {
		LetterType string `json:"letter_type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	if body.LetterType == "" {
		body.LetterType = model.LetterOfficial
	}

	result, err := h.letterService.Generate(c.Request.Context(), requestID, body.LetterType)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Verify streams the generated letter PDF for a request.
func (h *LetterHandler) Verify(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request id"))
		return
	}

	body, contentType, err := h.letterService.Fetch(c.Request.Context(), requestID)
	if err != nil {
		fail(c, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
