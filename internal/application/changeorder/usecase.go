package changeorder

import (
	"context"
	"fmt"
	"time"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
	"github.com/obrasul/production-api/internal/domain/workflow"
)

// UseCase é o motor de Comunicados de Alteração: criação com itens
// ADD/REMOVE, listagem paginada, atualização do status de estoque de um
// item com a regra de agregação, e o registro append-only de movimentos.
type UseCase struct {
	txRunner TxRunner
	caRepo   repository.ChangeOrderRepository
}

// NewUseCase constrói o caso de uso. As escritas passam pelo txRunner; o
// caRepo ligado ao pool atende só as leituras de List e Get.
func NewUseCase(txRunner TxRunner, caRepo repository.ChangeOrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, caRepo: caRepo}
}

// Create valida e persiste um C.A. com status PENDING_STOCK_ANALYSIS e os
// seus um ou dois itens, tudo em uma transação.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateChangeOrderRequest) (*dto.ChangeOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.ItemAdded == nil && in.ItemRemoved == nil {
		return nil, fmt.Errorf("%w: pelo menos um item (adicionado ou retirado) deve ser informado", domain.ErrInvalidInput)
	}
	if in.ItemAdded != nil && !workflow.ValidMaterial(asMaterial(in.ItemAdded)) {
		return nil, fmt.Errorf("%w: dados inválidos para o item a ser adicionado", domain.ErrInvalidInput)
	}
	if in.ItemRemoved != nil && !workflow.ValidMaterial(asMaterial(in.ItemRemoved)) {
		return nil, fmt.Errorf("%w: dados inválidos para o item a ser retirado", domain.ErrInvalidInput)
	}
	if in.ItemAdded != nil && in.ItemRemoved != nil &&
		workflow.SubstitutionConflict(asMaterial(in.ItemAdded), asMaterial(in.ItemRemoved)) {
		return nil, fmt.Errorf("%w: substituição inválida, o material adicionado é o mesmo que o retirado", domain.ErrInvalidInput)
	}

	ca := &entity.ChangeOrder{
		Status:        entity.CAStatusPendingStockAnalysis,
		RequesterInfo: in.RequesterInfo,
		Obra:          in.Obra,
		Op:            in.Op,
		SubItem:       in.SubItem,
		Reason:        in.Reason,
		UnitCost:      in.UnitCost,
		SubTotal:      in.SubTotal,
		CreationDate:  time.Now(),
	}
	if in.ItemAdded != nil {
		ca.Items = append(ca.Items, newItem(entity.ItemActionAdd, in.ItemAdded))
	}
	if in.ItemRemoved != nil {
		ca.Items = append(ca.Items, newItem(entity.ItemActionRemove, in.ItemRemoved))
	}

	// C.A. e itens na mesma transação
	err := uc.txRunner.Run(ctx, func(
		caRepo repository.ChangeOrderRepository,
		itemRepo repository.ChangeItemRepository,
		_ repository.StockMovementRepository,
	) error {
		return caRepo.Create(ca)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ca), nil
}

// List devolve a página de C.A.s (mais recente primeiro) com itens e
// movimentos, e o total sem filtro.
func (uc *UseCase) List(ctx context.Context, page, pageSize int) (*dto.PaginatedChangeOrders, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	cas, total, err := uc.caRepo.List(pageSize, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PaginatedChangeOrders{Items: make([]dto.ChangeOrderResponse, 0, len(cas)), Total: total}
	for _, ca := range cas {
		out.Items = append(out.Items, *toResponse(ca))
	}
	return out, nil
}

// Get devolve um C.A. completo. ErrNotFound quando não existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ChangeOrderResponse, error) {
	ca, err := uc.caRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ca == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(ca), nil
}

// UpdateItemStockStatus grava o novo status de estoque de um item e
// reavalia o C.A. dono pela regra de agregação, tudo sob o bloqueio da
// linha do C.A. para duas atualizações simultâneas não computarem agregados
// defasados.
func (uc *UseCase) UpdateItemStockStatus(ctx context.Context, itemID, newStatus string) (*dto.ChangeItemResponse, error) {
	if !workflow.ValidStockStatus(newStatus) {
		return nil, fmt.Errorf("%w: status de estoque desconhecido %q", domain.ErrInvalidInput, newStatus)
	}

	var updated *entity.ChangeItem
	err := uc.txRunner.Run(ctx, func(
		caRepo repository.ChangeOrderRepository,
		itemRepo repository.ChangeItemRepository,
		_ repository.StockMovementRepository,
	) error {
		item, err := itemRepo.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		// Bloqueia a linha do C.A. antes de mexer nos itens: serializa com
		// outras atualizações do mesmo agregado.
		ca, err := caRepo.GetForUpdate(item.CAID)
		if err != nil {
			return err
		}
		if ca == nil {
			return domain.ErrNotFound
		}
		if err := itemRepo.UpdateStockStatus(itemID, newStatus); err != nil {
			return err
		}
		item.StockStatus = newStatus
		updated = item

		items, err := itemRepo.ListByCA(ca.ID)
		if err != nil {
			return err
		}
		if next, promote := workflow.AggregateCAStatus(ca.Status, items); promote {
			return caRepo.UpdateStatus(ca.ID, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// RecordMovement registra um movimento de estoque de um C.A. Não altera o
// status do C.A.
func (uc *UseCase) RecordMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.StockMovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !workflow.ValidMovementType(in.MovementType) {
		return nil, fmt.Errorf("%w: tipo de movimento desconhecido %q", domain.ErrInvalidInput, in.MovementType)
	}
	mov := &entity.StockMovement{
		CAID:             in.CAID,
		ItemDescription:  in.ItemDescription,
		QuantityMoved:    in.QuantityMoved,
		MovementType:     in.MovementType,
		DestinationStock: in.DestinationStock,
		ExecutedBy:       in.ExecutedBy,
		ExecutionDate:    time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(
		caRepo repository.ChangeOrderRepository,
		_ repository.ChangeItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		ca, err := caRepo.GetByID(in.CAID)
		if err != nil {
			return err
		}
		if ca == nil {
			return fmt.Errorf("%w: C.A. %s", domain.ErrNotFound, in.CAID)
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

func asMaterial(m *dto.MaterialInfo) workflow.Material {
	return workflow.Material{Description: m.MaterialDescription, Code: m.MaterialCode, Quantity: m.Quantity}
}

func newItem(action string, m *dto.MaterialInfo) *entity.ChangeItem {
	return &entity.ChangeItem{
		ActionType:          action,
		MaterialDescription: m.MaterialDescription,
		MaterialCode:        m.MaterialCode,
		Brand:               m.Brand,
		Quantity:            m.Quantity,
		StockStatus:         entity.StockStatusPendingVerification,
	}
}

func toItemResponse(it *entity.ChangeItem) *dto.ChangeItemResponse {
	return &dto.ChangeItemResponse{
		ID:                  it.ID,
		MaterialDescription: it.MaterialDescription,
		MaterialCode:        it.MaterialCode,
		Brand:               it.Brand,
		Quantity:            it.Quantity,
		StockStatus:         it.StockStatus,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:               m.ID,
		CAID:             m.CAID,
		ItemDescription:  m.ItemDescription,
		QuantityMoved:    m.QuantityMoved,
		MovementType:     m.MovementType,
		DestinationStock: m.DestinationStock,
		ExecutedBy:       m.ExecutedBy,
		ExecutionDate:    m.ExecutionDate,
	}
}

func toResponse(ca *entity.ChangeOrder) *dto.ChangeOrderResponse {
	resp := &dto.ChangeOrderResponse{
		ID:             ca.ID,
		Status:         ca.Status,
		CreationDate:   ca.CreationDate,
		CompletionDate: ca.CompletionDate,
		Obra:           ca.Obra,
		Op:             ca.Op,
		SubItem:        ca.SubItem,
		RequesterInfo:  ca.RequesterInfo,
		Reason:         ca.Reason,
		UnitCost:       ca.UnitCost,
		SubTotal:       ca.SubTotal,
		Movements:      make([]dto.StockMovementResponse, 0, len(ca.Movements)),
	}
	if it := ca.ItemAdded(); it != nil {
		resp.ItemAdded = toItemResponse(it)
	}
	if it := ca.ItemRemoved(); it != nil {
		resp.ItemRemoved = toItemResponse(it)
	}
	for _, m := range ca.Movements {
		resp.Movements = append(resp.Movements, *toMovementResponse(m))
	}
	return resp
}
