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

var _ repository.ChangeOrderRepository = (*ChangeOrderRepo)(nil)

// ChangeOrderRepo implementação de ChangeOrderRepository (usável com pool ou tx).
type ChangeOrderRepo struct {
	q Querier
}

// NewChangeOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewChangeOrderRepository(q Querier) *ChangeOrderRepo {
	return &ChangeOrderRepo{q: q}
}

// Create persiste o C.A. e os seus itens. O caller decide a fronteira
// transacional passando um tx como Querier.
func (r *ChangeOrderRepo) Create(ca *entity.ChangeOrder) error {
	if ca.ID == "" {
		ca.ID = uuid.New().String()
	}
	query := `
		INSERT INTO change_orders (id, status, requester_info, obra, op, sub_item, reason, unit_cost, sub_total, creation_date, completion_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		ca.ID, ca.Status, ca.RequesterInfo, ca.Obra, ca.Op, ca.SubItem,
		ca.Reason, ca.UnitCost, ca.SubTotal, ca.CreationDate, ca.CompletionDate,
	)
	if err != nil {
		return fmt.Errorf("insert change order: %w", err)
	}
	items := NewChangeItemRepository(r.q)
	for _, it := range ca.Items {
		it.CAID = ca.ID
		if err := items.Create(it); err != nil {
			return err
		}
	}
	return nil
}

// GetByID devolve o C.A. completo (itens e movimentos), ou nil se não existe.
func (r *ChangeOrderRepo) GetByID(id string) (*entity.ChangeOrder, error) {
	ca, err := r.scanOne(`
		SELECT id, status, requester_info, obra, op, sub_item, reason, unit_cost, sub_total, creation_date, completion_date
		FROM change_orders WHERE id = $1`, id)
	if err != nil || ca == nil {
		return ca, err
	}
	return ca, r.loadChildren(ca)
}

// GetForUpdate lê o C.A. bloqueando a linha (SELECT ... FOR UPDATE). Não
// carrega filhos: a regra de agregação lê os itens na sequência, já dentro
// do bloqueio.
func (r *ChangeOrderRepo) GetForUpdate(id string) (*entity.ChangeOrder, error) {
	return r.scanOne(`
		SELECT id, status, requester_info, obra, op, sub_item, reason, unit_cost, sub_total, creation_date, completion_date
		FROM change_orders WHERE id = $1
		FOR UPDATE`, id)
}

// UpdateStatus grava o status do C.A.
func (r *ChangeOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE change_orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update change order status: %w", err)
	}
	return nil
}

// List devolve a página (criação mais recente primeiro) com itens e
// movimentos, e o total sem filtro.
func (r *ChangeOrderRepo) List(limit, offset int) ([]*entity.ChangeOrder, int, error) {
	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM change_orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count change orders: %w", err)
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT id, status, requester_info, obra, op, sub_item, reason, unit_cost, sub_total, creation_date, completion_date
		FROM change_orders
		ORDER BY creation_date DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list change orders: %w", err)
	}
	defer rows.Close()

	var cas []*entity.ChangeOrder
	for rows.Next() {
		ca, err := scanChangeOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		cas = append(cas, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list change orders: %w", err)
	}
	for _, ca := range cas {
		if err := r.loadChildren(ca); err != nil {
			return nil, 0, err
		}
	}
	return cas, total, nil
}

func (r *ChangeOrderRepo) loadChildren(ca *entity.ChangeOrder) error {
	items, err := NewChangeItemRepository(r.q).ListByCA(ca.ID)
	if err != nil {
		return err
	}
	ca.Items = items
	movs, err := NewStockMovementRepository(r.q).ListByCA(ca.ID)
	if err != nil {
		return err
	}
	ca.Movements = movs
	return nil
}

func (r *ChangeOrderRepo) scanOne(query, id string) (*entity.ChangeOrder, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	ca, err := scanChangeOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ca, nil
}

func scanChangeOrder(row pgx.Row) (*entity.ChangeOrder, error) {
	var ca entity.ChangeOrder
	err := row.Scan(
		&ca.ID, &ca.Status, &ca.RequesterInfo, &ca.Obra, &ca.Op, &ca.SubItem,
		&ca.Reason, &ca.UnitCost, &ca.SubTotal, &ca.CreationDate, &ca.CompletionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan change order: %w", err)
	}
	return &ca, nil
}
