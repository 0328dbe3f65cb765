package requisition

import (
	"context"
	"fmt"
	"time"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

// UseCase cuida das requisições internas de material: criação, listagem de
// pendentes e o atendimento direto (sem recebimento, ex. fechamento
// manual).
type UseCase struct {
	txRunner TxRunner
	reqRepo  repository.RequisitionRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner, reqRepo repository.RequisitionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, reqRepo: reqRepo}
}

// Create registra uma requisição pendente.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateRequisitionRequest) (*dto.RequisitionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	req := &entity.Requisition{
		RequestedBy:         in.RequestedBy,
		OrderNumber:         in.OrderNumber,
		Obra:                in.Obra,
		SubItem:             in.SubItem,
		MaterialDescription: in.MaterialDescription,
		RequestDate:         time.Now(),
	}
	if err := uc.reqRepo.Create(req); err != nil {
		return nil, err
	}
	return toResponse(req), nil
}

// Fulfill marca a requisição como atendida (caminho direto, sem
// recebimento). Check-then-set sob FOR UPDATE dentro de uma transação: a
// corrida com o vínculo na entrada deixa exatamente um vencedor.
func (uc *UseCase) Fulfill(ctx context.Context, id string) (*dto.RequisitionResponse, error) {
	var out *entity.Requisition
	err := uc.txRunner.RunRequisition(ctx, func(reqRepo repository.RequisitionRepository) error {
		req, err := reqRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.IsFulfilled {
			return fmt.Errorf("%w: esta requisição já foi marcada como atendida", domain.ErrConflict)
		}
		if err := reqRepo.MarkFulfilled(id, nil); err != nil {
			return err
		}
		req.IsFulfilled = true
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// ListPending devolve as requisições ainda não atendidas.
func (uc *UseCase) ListPending(ctx context.Context) ([]dto.RequisitionResponse, error) {
	reqs, err := uc.reqRepo.ListPending()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequisitionResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, *toResponse(req))
	}
	return out, nil
}

func toResponse(req *entity.Requisition) *dto.RequisitionResponse {
	return &dto.RequisitionResponse{
		ID:                  req.ID,
		Obra:                req.Obra,
		SubItem:             req.SubItem,
		RequestedBy:         req.RequestedBy,
		OrderNumber:         req.OrderNumber,
		MaterialDescription: req.MaterialDescription,
		RequestDate:         req.RequestDate,
		IsFulfilled:         req.IsFulfilled,
		ReceivingID:         req.ReceivingID,
	}
}
