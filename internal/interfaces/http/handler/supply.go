package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	supplyapp "github.com/ldipasquale/terzo-posto-server/internal/application/supply"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/dto"
)

// SupplyHandler handles supply-related API endpoints
type SupplyHandler struct {
	BaseHandler
	supplyService *supplyapp.SupplyService
}

// NewSupplyHandler creates a new SupplyHandler
func NewSupplyHandler(supplyService *supplyapp.SupplyService) *SupplyHandler {
	return &SupplyHandler{
		supplyService: supplyService,
	}
}

// Create godoc
// @Summary      Create a new supply
// @Description  Register a purchased or composed supply. Composed supplies carry a recipe and a yield.
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Param        request body supplyapp.CreateSupplyRequest true "Supply creation request"
// @Success      201 {object} dto.Response{data=supplyapp.SupplyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies [post]
func (h *SupplyHandler) Create(c *gin.Context) {
	var req supplyapp.CreateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.supplyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update godoc
// @Summary      Update a supply
// @Description  Update a supply's name, pricing, recipe or yield. The kind is fixed at creation.
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply ID" format(uuid)
// @Param        request body supplyapp.UpdateSupplyRequest true "Supply update request"
// @Success      200 {object} dto.Response{data=supplyapp.SupplyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id} [put]
func (h *SupplyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	var req supplyapp.UpdateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.supplyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @Summary      Delete a supply
// @Description  Delete a supply. Fails while any menu item or composed supply still references it.
// @Tags         supplies
// @Produce      json
// @Param        id path string true "Supply ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	if err := h.supplyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetByID godoc
// @Summary      Get supply by ID
// @Description  Retrieve a supply by its ID
// @Tags         supplies
// @Produce      json
// @Param        id path string true "Supply ID" format(uuid)
// @Success      200 {object} dto.Response{data=supplyapp.SupplyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id} [get]
func (h *SupplyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	resp, err := h.supplyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List supplies
// @Description  Retrieve a paginated list of supplies
// @Tags         supplies
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        kind query string false "Kind filter" Enums(purchased, composed)
// @Param        unit query string false "Unit filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]supplyapp.SupplyResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies [get]
func (h *SupplyHandler) List(c *gin.Context) {
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
	if kind := c.Query("kind"); kind != "" {
		filter.Filters["kind"] = kind
	}
	if unit := c.Query("unit"); unit != "" {
		filter.Filters["unit"] = unit
	}

	result, err := h.supplyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetCost godoc
// @Summary      Get the resolved unit cost of a supply
// @Description  Resolve the per-unit cost of a supply, walking composed recipes. Circular recipes report a circular status.
// @Tags         supplies
// @Produce      json
// @Param        id path string true "Supply ID" format(uuid)
// @Success      200 {object} dto.Response{data=supplyapp.CostResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/{id}/cost [get]
func (h *SupplyHandler) GetCost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supply ID format")
		return
	}

	resp, err := h.supplyService.GetCost(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetAllCosts godoc
// @Summary      Get resolved unit costs for all supplies
// @Description  Resolve per-unit costs for every supply in one pass
// @Tags         supplies
// @Produce      json
// @Success      200 {object} dto.Response{data=[]supplyapp.CostResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supplies/costs [get]
func (h *SupplyHandler) GetAllCosts(c *gin.Context) {
	resp, err := h.supplyService.GetAllCosts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
