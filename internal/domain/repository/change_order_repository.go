package repository

import "github.com/obrasul/production-api/internal/domain/entity"

// ChangeOrderRepository define a porta de persistência do C.A. (DIP).
type ChangeOrderRepository interface {
	// Create persiste o C.A. junto com os seus itens (mesma transação do caller).
	Create(ca *entity.ChangeOrder) error
	GetByID(id string) (*entity.ChangeOrder, error)
	// GetForUpdate lê o C.A. bloqueando a linha (SELECT ... FOR UPDATE) para a
	// regra de agregação de status observar um conjunto de itens consistente.
	GetForUpdate(id string) (*entity.ChangeOrder, error)
	UpdateStatus(id, status string) error
	// List devolve a página (mais recente primeiro) e o total sem filtro.
	List(limit, offset int) ([]*entity.ChangeOrder, int, error)
}

// ChangeItemRepository define a porta de persistência dos itens de um C.A.
type ChangeItemRepository interface {
	Create(item *entity.ChangeItem) error
	GetByID(id string) (*entity.ChangeItem, error)
	UpdateStockStatus(id, status string) error
	ListByCA(caID string) ([]*entity.ChangeItem, error)
}

// StockMovementRepository define a porta do registro de movimentos
// (append-only).
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByCA(caID string) ([]*entity.StockMovement, error)
}
