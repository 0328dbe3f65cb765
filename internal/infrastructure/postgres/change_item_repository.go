package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

var _ repository.ChangeItemRepository = (*ChangeItemRepo)(nil)

// ChangeItemRepo implementação de ChangeItemRepository (usável com pool ou tx).
type ChangeItemRepo struct {
	q Querier
}

// NewChangeItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewChangeItemRepository(q Querier) *ChangeItemRepo {
	return &ChangeItemRepo{q: q}
}

// Create persiste um item do C.A. A FK para change_orders tem ON DELETE
// CASCADE: os itens caem junto com o documento.
func (r *ChangeItemRepo) Create(item *entity.ChangeItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO change_items (id, ca_id, action_type, material_description, material_code, quantity, brand, stock_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CAID, item.ActionType, item.MaterialDescription,
		nullIfEmpty(item.MaterialCode), item.Quantity, nullIfEmpty(item.Brand), item.StockStatus,
	)
	if err != nil {
		return fmt.Errorf("insert change item: %w", err)
	}
	return nil
}

// GetByID devolve um item, ou nil se não existe.
func (r *ChangeItemRepo) GetByID(id string) (*entity.ChangeItem, error) {
	row := r.q.QueryRow(context.Background(), `
		SELECT id, ca_id, action_type, material_description, material_code, quantity, brand, stock_status
		FROM change_items WHERE id = $1`, id)
	item, err := scanChangeItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// UpdateStockStatus grava o status de estoque do item.
func (r *ChangeItemRepo) UpdateStockStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE change_items SET stock_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update change item stock status: %w", err)
	}
	return nil
}

// ListByCA devolve os itens de um C.A.
func (r *ChangeItemRepo) ListByCA(caID string) ([]*entity.ChangeItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, ca_id, action_type, material_description, material_code, quantity, brand, stock_status
		FROM change_items WHERE ca_id = $1`, caID)
	if err != nil {
		return nil, fmt.Errorf("list change items: %w", err)
	}
	defer rows.Close()

	var items []*entity.ChangeItem
	for rows.Next() {
		item, err := scanChangeItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list change items: %w", err)
	}
	return items, nil
}

func scanChangeItem(row pgx.Row) (*entity.ChangeItem, error) {
	var it entity.ChangeItem
	var code, brand *string
	err := row.Scan(&it.ID, &it.CAID, &it.ActionType, &it.MaterialDescription, &code, &it.Quantity, &brand, &it.StockStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan change item: %w", err)
	}
	it.MaterialCode = derefStr(code)
	it.Brand = derefStr(brand)
	return &it, nil
}
