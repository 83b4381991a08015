package handler

import (
	"net/http"

	"borrowdesk/internal/middleware"
	"borrowdesk/internal/model"
	"borrowdesk/internal/service"
	"borrowdesk/pkg/pagination"
	"borrowdesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHandler exposes the borrow-request lifecycle and the role-scoped
// inbox projections built on top of it.
type RequestHandler struct {
	requestService service.RequestService
	roleService    service.RoleService
}

func NewRequestHandler(requestService service.RequestService, roleService service.RoleService) *RequestHandler {
	return &RequestHandler{requestService: requestService, roleService: roleService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests", middleware.RequireAuth())
	{
		requests.POST("", h.Create)
		requests.GET("", h.ListMine)
		requests.GET("/:id", h.Detail)
		requests.POST("/:id/submit", h.Submit)
		requests.PUT("/:id/owner-review", h.OwnerReview)
		requests.PUT("/:id/headmaster-decision", h.HeadmasterDecide)
		requests.PUT("/:id/activate", h.Activate)
		requests.PUT("/:id/complete", h.Complete)
		requests.PUT("/:id/letter-viewed", h.MarkLetterViewed)
	}

	inbox := router.Group("/api/inbox", middleware.RequireAuth())
	{
		inbox.GET("/owner", h.OwnerInbox)
		inbox.GET("/headmaster", h.HeadmasterInbox)
		inbox.GET("/awaiting-activation", h.AwaitingActivation)
		inbox.GET("/counts", h.Counts)
	}

	router.GET("/api/dashboard", middleware.RequireAuth(), h.Dashboard)
	router.GET("/api/realtime", middleware.RequireAuth(), h.Realtime)
}

// Create saves a new borrow request as a draft
// @Summary  Create borrow request
// @Tags     requests
// @Accept   json
// @Produce  json
// @Param    body body service.CreateRequestDTO true "request payload"
// @Success  201 {object} response.Response
// @Router   /api/requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}

	var req service.CreateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	created, err := h.requestService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// ListMine returns the caller's own requests, newest first
// @Summary  List my requests
// @Tags     requests
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/requests [get]
func (h *RequestHandler) ListMine(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	params := pagination.Parse(c)

	requests, total, err := h.requestService.ListMine(c.Request.Context(), actorID, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   requests,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

// Detail returns one request. Borrowers can only read their own; approver
// roles can read any.
func (h *RequestHandler) Detail(c *gin.Context) {
	actorID, requestID, ok := h.actorAndRequest(c)
	if !ok {
		return
	}

	request, err := h.requestService.Detail(c.Request.Context(), requestID)
	if err != nil {
		fail(c, err)
		return
	}

	if request.BorrowerID != actorID {
		set := h.roleService.Resolve(c.Request.Context(), actorID)
		if !set.CanApproveRequests() {
			fail(c, model.ErrUnauthorized)
			return
		}
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// Submit moves a draft into the owner's review queue
// @Summary  Submit borrow request
// @Tags     requests
// @Produce  json
// @Param    id path string true "request id"
// @Success  200 {object} response.Response
// @Router   /api/requests/{id}/submit [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	actorID, requestID, ok := h.actorAndRequest(c)
	if !ok {
		return
	}
	request, err := h.requestService.Submit(c.Request.Context(), actorID, requestID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

func (h *RequestHandler) OwnerReview(c *gin.Context) {
	actorID, requestID, ok := h.actorAndRequest(c)
	if !ok {
		return
	}
	var decision service.DecisionDTO
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	request, err := h.requestService.OwnerReview(c.Request.Context(), actorID, requestID, decision)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

func (h *RequestHandler) HeadmasterDecide(c *gin.Context) {
	actorID, requestID, ok := h.actorAndRequest(c)
	if !ok {
		return
	}
	var decision service.DecisionDTO
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	request, err := h.requestService.HeadmasterDecide(c.Request.Context(), actorID, requestID, decision)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// Activate marks an approved loan as handed over. Losing the race to
// another approver is reported as activated=false, not an error.
func (h *RequestHandler) Activate(c *gin.Context) {
	actorID, requestID, ok := h.actorAndRequest(c)
	if !ok {
		return
	}
	result, err := h.requestService.Activate(c.Request.Context(), actorID, requestID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

func (h *RequestHandler) Complete(c *gin.Context) {
	actorID, requestID, ok := h.actorAndRequest(c)
	if !ok {
		return
	}
	request, err := h.requestService.Complete(c.Request.Context(), actorID, requestID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

func (h *RequestHandler) MarkLetterViewed(c *gin.Context) {
	actorID, requestID, ok := h.actorAndRequest(c)
	if !ok {
		return
	}
	if err := h.requestService.MarkLetterViewed(c.Request.Context(), actorID, requestID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"viewed": true}))
}

// OwnerInbox lists requests pending owner review, oldest first
// @Summary  Owner inbox
// @Tags     inbox
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/inbox/owner [get]
func (h *RequestHandler) OwnerInbox(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	requests, err := h.requestService.OwnerInbox(c.Request.Context(), actorID, widgetLimit(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

func (h *RequestHandler) HeadmasterInbox(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	requests, err := h.requestService.HeadmasterInbox(c.Request.Context(), actorID, widgetLimit(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

func (h *RequestHandler) AwaitingActivation(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	requests, err := h.requestService.AwaitingActivation(c.Request.Context(), actorID, widgetLimit(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// Counts returns the exact badge numbers for the caller's inboxes
// @Summary  Inbox badge counts
// @Tags     inbox
// @Produce  json
// @Success  200 {object} response.Response
// @Router   /api/inbox/counts [get]
func (h *RequestHandler) Counts(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	counts, err := h.requestService.Counts(c.Request.Context(), actorID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, counts))
}

func (h *RequestHandler) Dashboard(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return
	}
	summary, err := h.requestService.Dashboard(c.Request.Context(), actorID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

func (h *RequestHandler) Realtime(c *gin.Context) {
	board, err := h.requestService.Realtime(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, board))
}

// actorAndRequest pulls the authenticated user and the :id path parameter,
// writing the error response itself when either is missing.
func (h *RequestHandler) actorAndRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		fail(c, model.ErrUnauthenticated)
		return uuid.Nil, uuid.Nil, false
	}
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request id"))
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, requestID, true
}

// widgetLimit bounds inbox widget lists; page-size requests above the
// widget cap are clamped so badges stay the source of truth for totals.
// all=true requests the unbounded full-list view.
func widgetLimit(c *gin.Context) int {
	if c.Query("all") == "true" {
		return 0
	}
	params := pagination.Parse(c)
	if params.Limit > pagination.WidgetLimit {
		return pagination.WidgetLimit
	}
	return params.Limit
}
