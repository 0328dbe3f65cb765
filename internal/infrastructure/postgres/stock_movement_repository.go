package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação de StockMovementRepository (usável com
// pool ou tx). A tabela é append-only: só INSERT e SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra um movimento.
func (r *StockMovementRepo) Create(mov *entity.StockMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, ca_id, item_description, quantity_moved, movement_type, destination_stock, executed_by, execution_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.CAID, mov.ItemDescription, mov.QuantityMoved,
		mov.MovementType, nullIfEmpty(mov.DestinationStock), mov.ExecutedBy, mov.ExecutionDate,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByCA devolve os movimentos de um C.A., do mais antigo ao mais recente.
func (r *StockMovementRepo) ListByCA(caID string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, ca_id, item_description, quantity_moved, movement_type, destination_stock, executed_by, execution_date
		FROM stock_movements WHERE ca_id = $1
		ORDER BY execution_date`, caID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movs []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var dest *string
		if err := rows.Scan(&m.ID, &m.CAID, &m.ItemDescription, &m.QuantityMoved, &m.MovementType, &dest, &m.ExecutedBy, &m.ExecutionDate); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.DestinationStock = derefStr(dest)
		movs = append(movs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return movs, nil
}
