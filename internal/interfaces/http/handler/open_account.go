package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/ldipasquale/terzo-posto-server/internal/application/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/dto"
)

// OpenAccountHandler handles open account (tab) API endpoints
type OpenAccountHandler struct {
	BaseHandler
	accountService *orderingapp.OpenAccountService
}

// NewOpenAccountHandler creates a new OpenAccountHandler
func NewOpenAccountHandler(accountService *orderingapp.OpenAccountService) *OpenAccountHandler {
	return &OpenAccountHandler{
		accountService: accountService,
	}
}

// Create godoc
// @Summary      Open a new account
// @Description  Open a named tab that pending orders can be attached to
// @Tags         open-accounts
// @Accept       json
// @Produce      json
// @Param        request body orderingapp.CreateOpenAccountRequest true "Account creation request"
// @Success      201 {object} dto.Response{data=orderingapp.OpenAccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /open-accounts [post]
func (h *OpenAccountHandler) Create(c *gin.Context) {
	var req orderingapp.CreateOpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary      Get open account by ID
// @Description  Retrieve an account by its ID
// @Tags         open-accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderingapp.OpenAccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /open-accounts/{id} [get]
func (h *OpenAccountHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	resp, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List open accounts
// @Description  Retrieve a paginated list of accounts
// @Tags         open-accounts
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        status query string false "Status filter" Enums(open, closed)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]orderingapp.OpenAccountResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /open-accounts [get]
func (h *OpenAccountHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{},
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.accountService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AttachOrder godoc
// @Summary      Attach an order to an open account
// @Description  Attach a pending, unattached order to an open account
// @Tags         open-accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body orderingapp.AttachOrderRequest true "Attach request"
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /open-accounts/{id}/orders [post]
func (h *OpenAccountHandler) AttachOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var req orderingapp.AttachOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.accountService.AttachOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Close godoc
// @Summary      Close an open account
// @Description  Settle every order on the account, spreading an optional discount across them oldest first
// @Tags         open-accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body orderingapp.CloseAccountRequest true "Close request"
// @Success      200 {object} dto.Response{data=orderingapp.CloseAccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /open-accounts/{id}/close [post]
func (h *OpenAccountHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var req orderingapp.CloseAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.accountService.Close(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
