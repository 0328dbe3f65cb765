// Package workflow concentra as regras puras do fluxo C.A. / Recebimento /
// Requisição: funções determinísticas sem efeito colateral, avaliadas antes
// de qualquer escrita.
package workflow

import (
	"strings"

	"github.com/obrasul/production-api/internal/domain/entity"
)

// placeholder que os formulários de teste costumam enviar como descrição.
const placeholderDescription = "string"

// Material é a visão mínima de um item para as validações de criação do C.A.
type Material struct {
	Description string
	Code        string
	Quantity    int
}

// ValidMaterial verifica a sanidade de um item: descrição com pelo menos 3
// caracteres e diferente do placeholder, quantidade positiva.
func ValidMaterial(m Material) bool {
	if len(m.Description) < 3 {
		return false
	}
	if strings.EqualFold(m.Description, placeholderDescription) {
		return false
	}
	return m.Quantity > 0
}

// SubstitutionConflict detecta a substituição inválida: item adicionado e
// item retirado resolvem para o mesmo material. A comparação é pelo código
// quando ambos o têm; na falta de código, pela descrição exata
// (case-sensitive, comportamento herdado do produto).
func SubstitutionConflict(added, removed Material) bool {
	if added.Code != "" && removed.Code != "" && added.Code == removed.Code {
		return true
	}
	return added.Description == removed.Description
}

// ValidStockStatus verifica a pertença ao enum de status de estoque aceito
// em atualizações (o default PENDING_VERIFICATION não é um destino válido).
func ValidStockStatus(s string) bool {
	switch s {
	case entity.StockStatusInStock,
		entity.StockStatusPurchaseNeeded,
		entity.StockStatusWithdrawalLogged,
		entity.StockStatusWithdrawalPending,
		entity.StockStatusReturnedToStock:
		return true
	}
	return false
}

// ValidMovementType verifica a pertença ao enum de tipos de movimento.
func ValidMovementType(t string) bool {
	switch t {
	case entity.MovementTypeOutOfSite,
		entity.MovementTypeIntoWarehouse,
		entity.MovementTypeDiscard:
		return true
	}
	return false
}

// AggregateCAStatus decide a promoção de status de um C.A. a partir do
// conjunto atual de itens. Só age quando o C.A. ainda está
// PENDING_STOCK_ANALYSIS (no-op idempotente depois da promoção). Quando
// nenhum item continua PENDING_VERIFICATION: AWAITING_PURCHASE se algum item
// exige compra, senão READY_FOR_EXECUTION. Devolve o status novo e true, ou
// ("", false) quando nada muda.
func AggregateCAStatus(current string, items []*entity.ChangeItem) (string, bool) {
	if current != entity.CAStatusPendingStockAnalysis || len(items) == 0 {
		return "", false
	}
	needsPurchase := false
	for _, it := range items {
		if it.StockStatus == entity.StockStatusPendingVerification {
			return "", false
		}
		if it.StockStatus == entity.StockStatusPurchaseNeeded {
			needsPurchase = true
		}
	}
	if needsPurchase {
		return entity.CAStatusAwaitingPurchase, true
	}
	return entity.CAStatusReadyForExecution, true
}

// ResolveConferenceStatus aplica a ordem de decisão da conferência:
// material recusado → REJECTED; qualquer pendência → PENDING; senão
// CONFERRED.
func ResolveConferenceStatus(d entity.ConferenceDetails) string {
	if d.RefusedMaterial {
		return entity.ReceivingStatusRejected
	}
	if d.IssueType != entity.IssueTypeNone {
		return entity.ReceivingStatusPending
	}
	return entity.ReceivingStatusConferred
}

// ValidIssueType verifica a pertença ao enum de pendências da conferência.
func ValidIssueType(t string) bool {
	switch t {
	case entity.IssueTypeNone,
		entity.IssueTypeDamage,
		entity.IssueTypeWrongItem,
		entity.IssueTypeWrongQuantity,
		entity.IssueTypeOther:
		return true
	}
	return false
}

// ValidFinalStatus verifica os destinos permitidos ao resolver uma
// pendência.
func ValidFinalStatus(s string) bool {
	return s == entity.ReceivingStatusConferred || s == entity.ReceivingStatusRejected
}
