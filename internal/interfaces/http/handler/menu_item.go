package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	menuapp "github.com/ldipasquale/terzo-posto-server/internal/application/menu"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/dto"
)

// MenuItemHandler handles menu item API endpoints
type MenuItemHandler struct {
	BaseHandler
	menuService *menuapp.MenuItemService
}

// NewMenuItemHandler creates a new MenuItemHandler
func NewMenuItemHandler(menuService *menuapp.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{
		menuService: menuService,
	}
}

// Create godoc
// @Summary      Create a new menu item
// @Description  Register a sellable menu item with its ingredient list
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Param        request body menuapp.CreateMenuItemRequest true "Menu item creation request"
// @Success      201 {object} dto.Response{data=menuapp.MenuItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu-items [post]
func (h *MenuItemHandler) Create(c *gin.Context) {
	var req menuapp.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.menuService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update godoc
// @Summary      Update a menu item
// @Description  Update a menu item's name, price, ingredients or status
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Menu item ID" format(uuid)
// @Param        request body menuapp.UpdateMenuItemRequest true "Menu item update request"
// @Success      200 {object} dto.Response{data=menuapp.MenuItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu-items/{id} [put]
func (h *MenuItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	var req menuapp.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.menuService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @Summary      Delete a menu item
// @Description  Delete a menu item and its ingredient lines
// @Tags         menu-items
// @Produce      json
// @Param        id path string true "Menu item ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu-items/{id} [delete]
func (h *MenuItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetByID godoc
// @Summary      Get menu item by ID
// @Description  Retrieve a menu item by its ID
// @Tags         menu-items
// @Produce      json
// @Param        id path string true "Menu item ID" format(uuid)
// @Success      200 {object} dto.Response{data=menuapp.MenuItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu-items/{id} [get]
func (h *MenuItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	resp, err := h.menuService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List menu items
// @Description  Retrieve a paginated list of menu items
// @Tags         menu-items
// @Produce      json
// @Param        search query string false "Search by name or description"
// @Param        status query string false "Status filter" Enums(active, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]menuapp.MenuItemResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu-items [get]
func (h *MenuItemHandler) List(c *gin.Context) {
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

	result, err := h.menuService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetCost godoc
// @Summary      Get the ingredient cost and margin of a menu item
// @Description  Resolve the ingredient cost of a menu item and derive its margin against the selling price. Both figures are null when any ingredient cost is unresolvable.
// @Tags         menu-items
// @Produce      json
// @Param        id path string true "Menu item ID" format(uuid)
// @Success      200 {object} dto.Response{data=menuapp.MenuItemCostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /menu-items/{id}/cost [get]
func (h *MenuItemHandler) GetCost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid menu item ID format")
		return
	}

	resp, err := h.menuService.GetCost(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
