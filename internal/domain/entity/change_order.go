package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do Comunicado de Alteração (C.A.).
// O fluxo avança somente para frente: a análise de estoque promove o C.A.
// para AWAITING_PURCHASE ou READY_FOR_EXECUTION; DONE e CANCELLED são
// definidos por ação operacional, fora do motor de status.
const (
	CAStatusPendingStockAnalysis = "PENDING_STOCK_ANALYSIS"
	CAStatusAwaitingPurchase     = "AWAITING_PURCHASE"
	CAStatusReadyForExecution    = "READY_FOR_EXECUTION"
	CAStatusDone                 = "DONE"
	CAStatusCancelled            = "CANCELLED"
)

// Ação de um item do C.A.
const (
	ItemActionAdd    = "ADD"
	ItemActionRemove = "REMOVE"
)

// Status de estoque de um item do C.A.
const (
	StockStatusPendingVerification = "PENDING_VERIFICATION"
	StockStatusInStock             = "VERIFIED_IN_STOCK"
	StockStatusPurchaseNeeded      = "VERIFIED_PURCHASE_NEEDED"
	StockStatusWithdrawalLogged    = "WITHDRAWAL_LOGGED"
	StockStatusWithdrawalPending   = "WITHDRAWAL_PENDING"
	StockStatusReturnedToStock     = "RETURNED_TO_STOCK"
)

// Tipos de movimento de estoque vinculados a um C.A.
const (
	MovementTypeOutOfSite     = "OUT_OF_SITE"
	MovementTypeIntoWarehouse = "INTO_WAREHOUSE"
	MovementTypeDiscard       = "DISCARD"
)

// ChangeOrder representa um Comunicado de Alteração: pedido de adicionar
// e/ou retirar material de uma ordem de produção, com workflow de
// disponibilidade de estoque.
type ChangeOrder struct {
	ID             string
	Status         string
	RequesterInfo  string
	Obra           int
	Op             int
	SubItem        *int
	Reason         string
	UnitCost       *decimal.Decimal
	SubTotal       *decimal.Decimal
	CreationDate   time.Time
	CompletionDate *time.Time

	Items     []*ChangeItem
	Movements []*StockMovement
}

// ItemAdded devolve o item com ação ADD, se existir.
func (ca *ChangeOrder) ItemAdded() *ChangeItem {
	for _, it := range ca.Items {
		if it.ActionType == ItemActionAdd {
			return it
		}
	}
	return nil
}

// ItemRemoved devolve o item com ação REMOVE, se existir.
func (ca *ChangeOrder) ItemRemoved() *ChangeItem {
	for _, it := range ca.Items {
		if it.ActionType == ItemActionRemove {
			return it
		}
	}
	return nil
}

// ChangeItem é um item de material de um C.A. (pertence a exatamente um C.A.;
// removido em cascata junto com ele).
type ChangeItem struct {
	ID                  string
	CAID                string
	ActionType          string
	MaterialDescription string
	MaterialCode        string
	Quantity            int
	Brand               string
	StockStatus         string
}

// StockMovement é o registro de auditoria de um movimento físico de material
// de um C.A. Append-only: nunca é alterado depois de criado.
type StockMovement struct {
	ID               string
	CAID             string
	ItemDescription  string
	QuantityMoved    int
	MovementType     string
	DestinationStock string
	ExecutedBy       string
	ExecutionDate    time.Time
}
