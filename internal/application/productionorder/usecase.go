package productionorder

import (
	"context"
	"fmt"
	"time"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

// Defaults dos status de componente quando o formulário vem vazio.
const (
	defaultComponentStatus = "pendente"
	defaultGeneralStatus   = "produção"
)

// UseCase CRUD das ordens de produção do painel.
type UseCase struct {
	orderRepo repository.ProductionOrderRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(orderRepo repository.ProductionOrderRepository) *UseCase {
	return &UseCase{orderRepo: orderRepo}
}

// Create registra uma ordem. NroOp é único: ErrDuplicate quando já existe.
func (uc *UseCase) Create(ctx context.Context, ownerID string, in dto.ProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	existing, err := uc.orderRepo.GetByNroOp(in.NroOp)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: NRO OP %q já existe", domain.ErrDuplicate, in.NroOp)
	}
	now := time.Now()
	order := &entity.ProductionOrder{
		ObraNumber:     in.ObraNumber,
		NroOp:          in.NroOp,
		TransfPotencia: orDefault(in.TransfPotencia, defaultComponentStatus),
		TransfCorrente: orDefault(in.TransfCorrente, defaultComponentStatus),
		ChaveSecc:      orDefault(in.ChaveSecc, defaultComponentStatus),
		Disjuntor:      orDefault(in.Disjuntor, defaultComponentStatus),
		BuchaIsoRaio:   orDefault(in.BuchaIsoRaio, defaultComponentStatus),
		GeralStatus:    orDefault(in.GeralStatus, defaultGeneralStatus),
		Descricao:      in.Descricao,
		Nobreak:        in.Nobreak,
		CAR167:         in.CAR167,
		OwnerID:        ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

// List devolve as ordens, com filtro opcional por obra e NRO OP.
func (uc *UseCase) List(ctx context.Context, filter repository.ProductionOrderFilter) ([]dto.ProductionOrderResponse, error) {
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toResponse(o))
	}
	return out, nil
}

// Update sobrescreve os campos editáveis e carimba quem atualizou.
func (uc *UseCase) Update(ctx context.Context, id, updatedByID string, in dto.ProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	order.ObraNumber = in.ObraNumber
	order.NroOp = in.NroOp
	order.TransfPotencia = orDefault(in.TransfPotencia, order.TransfPotencia)
	order.TransfCorrente = orDefault(in.TransfCorrente, order.TransfCorrente)
	order.ChaveSecc = orDefault(in.ChaveSecc, order.ChaveSecc)
	order.Disjuntor = orDefault(in.Disjuntor, order.Disjuntor)
	order.BuchaIsoRaio = orDefault(in.BuchaIsoRaio, order.BuchaIsoRaio)
	order.GeralStatus = orDefault(in.GeralStatus, order.GeralStatus)
	order.Descricao = in.Descricao
	order.Nobreak = in.Nobreak
	order.CAR167 = in.CAR167
	order.LastUpdatedByID = updatedByID
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

// Delete remove a ordem. ErrNotFound quando não existe.
func (uc *UseCase) Delete(ctx context.Context, id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.orderRepo.Delete(id); err != nil {
		return nil, err
	}
	return toResponse(order), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func toResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	return &dto.ProductionOrderResponse{
		ID:              o.ID,
		ObraNumber:      o.ObraNumber,
		NroOp:           o.NroOp,
		TransfPotencia:  o.TransfPotencia,
		TransfCorrente:  o.TransfCorrente,
		ChaveSecc:       o.ChaveSecc,
		Disjuntor:       o.Disjuntor,
		BuchaIsoRaio:    o.BuchaIsoRaio,
		GeralStatus:     o.GeralStatus,
		Descricao:       o.Descricao,
		Nobreak:         o.Nobreak,
		CAR167:          o.CAR167,
		OwnerID:         o.OwnerID,
		LastUpdatedByID: o.LastUpdatedByID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
