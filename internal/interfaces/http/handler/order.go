package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/ldipasquale/terzo-posto-server/internal/application/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/dto"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create godoc
// @Summary      Place a new order
// @Description  Place an order for one or more menu items. The order receives the next sequential number.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body orderingapp.CreateOrderRequest true "Order creation request"
// @Success      201 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderingapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary      Get order by ID
// @Description  Retrieve an order with its lines
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderingapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List orders
// @Description  Retrieve a paginated list of orders, newest first by default
// @Tags         orders
// @Produce      json
// @Param        search query string false "Search by order number"
// @Param        status query string false "Status filter" Enums(pending, paid)
// @Param        payment_method query string false "Payment method filter" Enums(cash, card, transfer)
// @Param        open_account_id query string false "Open account filter, or 'none' for detached orders"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]orderingapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
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
	if method := c.Query("payment_method"); method != "" {
		filter.Filters["payment_method"] = method
	}
	if account := c.Query("open_account_id"); account != "" {
		if account == "none" {
			filter.Filters["open_account_id"] = nil
		} else {
			accountID, err := uuid.Parse(account)
			if err != nil {
				h.BadRequest(c, "Invalid open account ID format")
				return
			}
			filter.Filters["open_account_id"] = accountID
		}
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
