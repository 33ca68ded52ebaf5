package stock

import (
	"github.com/erp/stockops/internal/domain/stock"
)

// MoveResponse represents a move in API responses
type MoveResponse struct {
	ID               string   `json:"id"`
	Reference        string   `json:"reference,omitempty"`
	State            string   `json:"state"`
	Quantity         string   `json:"quantity"`
	ProcureMethod    string   `json:"procure_method"`
	SourceLocationID string   `json:"source_location_id"`
	DestLocationID   string   `json:"dest_location_id"`
	LotNames         []string `json:"lot_names,omitempty"`
}

// PickingResponse represents a picking in API responses
type PickingResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	State            string         `json:"state"`
	OperationTypeID  string         `json:"operation_type_id"`
	SourceLocationID string         `json:"source_location_id"`
	DestLocationID   string         `json:"dest_location_id"`
	Moves            []MoveResponse `json:"moves,omitempty"`
}

// PickingSummary identifies a picking in preview payloads
type PickingSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// ChangeWarehousePreview is the dry-run payload: the chain that would be
// reassigned and its size.
type ChangeWarehousePreview struct {
	ChainedPickings []PickingSummary `json:"chained_pickings"`
	Count           int              `json:"count"`
}

// ChangeWarehouseResult identifies the updated document set so the caller
// can render a single- or multi-document view.
type ChangeWarehouseResult struct {
	UpdatedPickings []PickingResponse `json:"updated_pickings"`
}

// ToMoveResponse converts a move to its response representation
func ToMoveResponse(m *stock.Move) MoveResponse {
	return MoveResponse{
		ID:               m.ID.String(),
		Reference:        m.Reference,
		State:            m.State.String(),
		Quantity:         m.Quantity.String(),
		ProcureMethod:    string(m.ProcureMethod),
		SourceLocationID: m.SourceLocationID.String(),
		DestLocationID:   m.DestLocationID.String(),
		LotNames:         m.LotNames(),
	}
}

// ToPickingResponse converts a picking to its response representation
func ToPickingResponse(p *stock.Picking) PickingResponse {
	moves := make([]MoveResponse, 0, len(p.Moves))
	for _, m := range p.Moves {
		moves = append(moves, ToMoveResponse(m))
	}
	return PickingResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		State:            p.State.String(),
		OperationTypeID:  p.OperationTypeID.String(),
		SourceLocationID: p.SourceLocationID.String(),
		DestLocationID:   p.DestLocationID.String(),
		Moves:            moves,
	}
}

// ToPickingSummary converts a picking to its summary representation
func ToPickingSummary(p *stock.Picking) PickingSummary {
	return PickingSummary{
		ID:    p.ID.String(),
		Name:  p.Name,
		State: p.State.String(),
	}
}

// ToPickingResponses converts a set of pickings, preserving set order
func ToPickingResponses(pickings []*stock.Picking) []PickingResponse {
	out := make([]PickingResponse, 0, len(pickings))
	for _, p := range pickings {
		out = append(out, ToPickingResponse(p))
	}
	return out
}
