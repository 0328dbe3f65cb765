package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialInfo item de material (adicionado ou retirado) de um C.A.
type MaterialInfo struct {
	MaterialDescription string `json:"material_description" validate:"required,min=3"`
	MaterialCode        string `json:"material_code,omitempty"`
	Brand               string `json:"brand,omitempty"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
}

// CreateChangeOrderRequest body para POST /api/ca. Pelo menos um dos dois
// itens deve vir preenchido; a regra cruzada (substituição inválida) é
// checada no caso de uso.
type CreateChangeOrderRequest struct {
	Obra          int              `json:"obra" validate:"required,gt=0"`
	Op            int              `json:"op" validate:"required,gt=0"`
	SubItem       *int             `json:"sub_item,omitempty" validate:"omitempty,gte=0"`
	RequesterInfo string           `json:"requester_info" validate:"required,min=3"`
	Reason        string           `json:"reason" validate:"required,min=10"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	SubTotal      *decimal.Decimal `json:"sub_total,omitempty"`
	ItemAdded     *MaterialInfo    `json:"item_added,omitempty"`
	ItemRemoved   *MaterialInfo    `json:"item_removed,omitempty"`
}

// ChangeItemResponse item de um C.A. na resposta.
type ChangeItemResponse struct {
	ID                  string `json:"id"`
	MaterialDescription string `json:"material_description"`
	MaterialCode        string `json:"material_code,omitempty"`
	Brand               string `json:"brand,omitempty"`
	Quantity            int    `json:"quantity"`
	StockStatus         string `json:"stock_status"`
}

// StockMovementResponse movimento de estoque na resposta.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	CAID             string    `json:"ca_id"`
	ItemDescription  string    `json:"item_description"`
	QuantityMoved    int       `json:"quantity_moved"`
	MovementType     string    `json:"movement_type"`
	DestinationStock string    `json:"destination_stock,omitempty"`
	ExecutedBy       string    `json:"executed_by"`
	ExecutionDate    time.Time `json:"execution_date"`
}

// ChangeOrderResponse C.A. completo com itens ADD/REMOVE e movimentos.
type ChangeOrderResponse struct {
	ID             string                  `json:"id"`
	Status         string                  `json:"status"`
	CreationDate   time.Time               `json:"creation_date"`
	CompletionDate *time.Time              `json:"completion_date,omitempty"`
	Obra           int                     `json:"obra"`
	Op             int                     `json:"op"`
	SubItem        *int                    `json:"sub_item,omitempty"`
	RequesterInfo  string                  `json:"requester_info"`
	Reason         string                  `json:"reason"`
	UnitCost       *decimal.Decimal        `json:"unit_cost,omitempty"`
	SubTotal       *decimal.Decimal        `json:"sub_total,omitempty"`
	ItemAdded      *ChangeItemResponse     `json:"item_added,omitempty"`
	ItemRemoved    *ChangeItemResponse     `json:"item_removed,omitempty"`
	Movements      []StockMovementResponse `json:"movements"`
}

// PaginatedChangeOrders resposta de GET /api/ca.
type PaginatedChangeOrders struct {
	Items []ChangeOrderResponse `json:"items"`
	Total int                   `json:"total"`
}

// UpdateStockStatusRequest body para PUT /api/ca/items/:item_id/stock-status.
type UpdateStockStatusRequest struct {
	StockStatus string `json:"stock_status" validate:"required"`
}

// CreateMovementRequest body para POST /api/ca/movements.
type CreateMovementRequest struct {
	CAID             string `json:"ca_id" validate:"required"`
	ItemDescription  string `json:"item_description" validate:"required,min=3"`
	QuantityMoved    int    `json:"quantity_moved" validate:"required,gt=0"`
	MovementType     string `json:"movement_type" validate:"required"`
	DestinationStock string `json:"destination_stock,omitempty"`
	ExecutedBy       string `json:"executed_by" validate:"required,min=2"`
}
