package repository

import "github.com/obrasul/production-api/internal/domain/entity"

// ProductionOrderFilter são os filtros opcionais da listagem de ordens.
type ProductionOrderFilter struct {
	ObraNumber string
	NroOp      string
	Skip       int
	Limit      int
}

// ProductionOrderRepository define a porta de persistência das ordens de
// produção.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	GetByNroOp(nroOp string) (*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error
	Delete(id string) error
	List(filter ProductionOrderFilter) ([]*entity.ProductionOrder, error)
}
