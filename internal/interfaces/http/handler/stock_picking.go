package handler

import (
	appstock "github.com/erp/stockops/internal/application/stock"
	"github.com/erp/stockops/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CancelBackToDraftRequest selects the pickings to cancel and reset
type CancelBackToDraftRequest struct {
	PickingIDs []string `json:"picking_ids" binding:"required,min=1,dive,uuid"`
}

// ChangeWarehouseRequest selects the pickings to reassign and their target
type ChangeWarehouseRequest struct {
	PickingIDs        []string `json:"picking_ids" binding:"required,min=1,dive,uuid"`
	TargetWarehouseID string   `json:"target_warehouse_id" binding:"required,uuid"`
	IncludeChained    bool     `json:"include_chained"`
}

// StockPickingHandler exposes the cancel/back-to-draft and warehouse
// reassignment operations
type StockPickingHandler struct {
	BaseHandler
	workflow *appstock.PickingWorkflowService
	change   *appstock.ChangeWarehouseService
	logger   *zap.Logger
}

// NewStockPickingHandler creates a new StockPickingHandler
func NewStockPickingHandler(workflow *appstock.PickingWorkflowService, change *appstock.ChangeWarehouseService, logger *zap.Logger) *StockPickingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockPickingHandler{workflow: workflow, change: change, logger: logger}
}

// RegisterRoutes registers picking routes on the given group. All picking
// operations require the cancel/back-to-draft role, preview included, so the
// whole group sits behind the role gate.
func (h *StockPickingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pickings := rg.Group("/stock/pickings")
	pickings.Use(middleware.RequireRole(appstock.RoleCancelBackToDraft))
	pickings.POST("/cancel-to-draft", h.CancelBackToDraft)
	pickings.POST("/change-warehouse/preview", h.PreviewChangeWarehouse)
	pickings.POST("/change-warehouse", h.ChangeWarehouse)
}

// authContext builds the caller's auth context from JWT claims. The
// application layer owns the actual permission decision.
func (h *StockPickingHandler) authContext(c *gin.Context) (appstock.AuthContext, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return appstock.AuthContext{}, false
	}
	return appstock.AuthContext{
		UserID: userID,
		Roles:  middleware.GetJWTRoles(c),
	}, true
}

// CancelBackToDraft cancels the pickings with the default chain-severing
// behavior and resets their moves to draft.
// POST /api/v1/stock/pickings/cancel-to-draft
func (h *StockPickingHandler) CancelBackToDraft(c *gin.Context) {
	var req CancelBackToDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	auth, ok := h.authContext(c)
	if !ok {
		return
	}
	ids, err := parseUUIDs(req.PickingIDs)
	if err != nil {
		h.BadRequest(c, "Invalid picking ID")
		return
	}

	result, err := h.workflow.CancelAndBackToDraft(c.Request.Context(), auth, ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// PreviewChangeWarehouse returns the working set a reassignment would touch
// without mutating anything.
// POST /api/v1/stock/pickings/change-warehouse/preview
func (h *StockPickingHandler) PreviewChangeWarehouse(c *gin.Context) {
	sess, ok := h.openSession(c)
	if !ok {
		return
	}
	h.Success(c, sess.Preview())
}

// ChangeWarehouse reassigns the pickings (and optionally their chains) to the
// target warehouse.
// POST /api/v1/stock/pickings/change-warehouse
func (h *StockPickingHandler) ChangeWarehouse(c *gin.Context) {
	sess, ok := h.openSession(c)
	if !ok {
		return
	}
	result, err := sess.Execute(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// openSession parses a ChangeWarehouseRequest and opens a reassignment
// session with the target already selected.
func (h *StockPickingHandler) openSession(c *gin.Context) (*appstock.ChangeWarehouseSession, bool) {
	var req ChangeWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return nil, false
	}
	auth, ok := h.authContext(c)
	if !ok {
		return nil, false
	}
	ids, err := parseUUIDs(req.PickingIDs)
	if err != nil {
		h.BadRequest(c, "Invalid picking ID")
		return nil, false
	}
	targetID, err := uuid.Parse(req.TargetWarehouseID)
	if err != nil {
		h.BadRequest(c, "Invalid target warehouse ID")
		return nil, false
	}

	ctx := c.Request.Context()
	sess, err := h.change.OpenSession(ctx, auth, ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return nil, false
	}
	if err := sess.SetTarget(ctx, targetID, req.IncludeChained); err != nil {
		h.HandleDomainError(c, err)
		return nil, false
	}
	return sess, true
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
