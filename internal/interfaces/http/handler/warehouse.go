package handler

import (
	appstock "github.com/erp/stockops/internal/application/stock"
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	DeliverySteps  string `json:"delivery_steps"`
	ReceptionSteps string `json:"reception_steps"`
}

// ListPickingsRequest filters a warehouse's picking listing
type ListPickingsRequest struct {
	State    string `form:"state" binding:"omitempty,move_state"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// OperationTypeResponse represents an operation type in API responses
type OperationTypeResponse struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Kind                    string  `json:"kind"`
	SequenceCode            string  `json:"sequence_code"`
	DefaultSourceLocationID *string `json:"default_source_location_id,omitempty"`
	DefaultDestLocationID   *string `json:"default_dest_location_id,omitempty"`
}

// LocationResponse represents a storage location in API responses
type LocationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Usage       string  `json:"usage"`
	WarehouseID *string `json:"warehouse_id,omitempty"`
}

// WarehouseHandler exposes read access to warehouse configuration (including
// operation types and locations) and the pickings routed through a warehouse.
type WarehouseHandler struct {
	BaseHandler
	warehouses     stock.WarehouseRepository
	pickings       stock.PickingRepository
	operationTypes stock.OperationTypeRepository
	locations      stock.LocationRepository
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(
	warehouses stock.WarehouseRepository,
	pickings stock.PickingRepository,
	operationTypes stock.OperationTypeRepository,
	locations stock.LocationRepository,
) *WarehouseHandler {
	return &WarehouseHandler{
		warehouses:     warehouses,
		pickings:       pickings,
		operationTypes: operationTypes,
		locations:      locations,
	}
}

// RegisterRoutes registers warehouse routes on the given group
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/stock/warehouses")
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/pickings", h.ListPickings)
	group.GET("/:id/operation-types", h.ListOperationTypes)
	rg.GET("/stock/locations", h.ListLocations)
}

// List lists all warehouses
// GET /api/v1/stock/warehouses
func (h *WarehouseHandler) List(c *gin.Context) {
	filter := shared.Filter{Search: c.Query("search")}
	warehouses, err := h.warehouses.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	out := make([]WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, toWarehouseResponse(w))
	}
	h.Success(c, out)
}

// Get returns one warehouse by ID
// GET /api/v1/stock/warehouses/:id
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	warehouse, err := h.warehouses.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toWarehouseResponse(warehouse))
}

// ListPickings lists the pickings routed through a warehouse
// GET /api/v1/stock/warehouses/:id/pickings
func (h *WarehouseHandler) ListPickings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	var req ListPickingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := shared.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}
	if req.State != "" {
		filter.Filters = map[string]interface{}{"state": req.State}
	}

	pickings, err := h.pickings.FindByWarehouse(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, appstock.ToPickingResponses(pickings))
}

// ListOperationTypes lists the operation types of a warehouse
// GET /api/v1/stock/warehouses/:id/operation-types
func (h *WarehouseHandler) ListOperationTypes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	if _, err := h.warehouses.FindByID(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	types, err := h.operationTypes.FindByWarehouse(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	out := make([]OperationTypeResponse, 0, len(types))
	for _, ot := range types {
		out = append(out, toOperationTypeResponse(ot))
	}
	h.Success(c, out)
}

// ListLocations lists storage locations by usage, e.g. all customer locations
// GET /api/v1/stock/locations?usage=customer
func (h *WarehouseHandler) ListLocations(c *gin.Context) {
	usage := stock.LocationUsage(c.Query("usage"))
	if usage == "" {
		h.BadRequest(c, "Query parameter 'usage' is required")
		return
	}
	if !usage.IsValid() {
		h.BadRequest(c, "Unknown location usage: "+string(usage))
		return
	}
	locations, err := h.locations.FindByUsage(c.Request.Context(), usage)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	out := make([]LocationResponse, 0, len(locations))
	for _, loc := range locations {
		out = append(out, toLocationResponse(loc))
	}
	h.Success(c, out)
}

func toOperationTypeResponse(ot *stock.OperationType) OperationTypeResponse {
	resp := OperationTypeResponse{
		ID:           ot.ID.String(),
		Name:         ot.Name,
		Kind:         string(ot.Kind),
		SequenceCode: ot.SequenceCode,
	}
	if ot.DefaultSourceLocationID != nil {
		s := ot.DefaultSourceLocationID.String()
		resp.DefaultSourceLocationID = &s
	}
	if ot.DefaultDestLocationID != nil {
		s := ot.DefaultDestLocationID.String()
		resp.DefaultDestLocationID = &s
	}
	return resp
}

func toLocationResponse(loc *stock.Location) LocationResponse {
	resp := LocationResponse{
		ID:    loc.ID.String(),
		Name:  loc.Name,
		Usage: string(loc.Usage),
	}
	if loc.WarehouseID != nil {
		s := loc.WarehouseID.String()
		resp.WarehouseID = &s
	}
	return resp
}

func toWarehouseResponse(w *stock.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:             w.ID.String(),
		Name:           w.Name,
		Code:           w.Code,
		DeliverySteps:  string(w.DeliverySteps),
		ReceptionSteps: string(w.ReceptionSteps),
	}
}
