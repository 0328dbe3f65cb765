package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementação de ProductionOrderRepository.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const productionOrderColumns = `id, obra_number, nro_op, transf_potencia_status, transf_corrente_status,
	chave_secc_status, disjuntor_status, bucha_iso_raio_status, geral_status,
	descricao, nobreak, ca_r167, owner_id, last_updated_by_id, created_at, updated_at`

// Create persiste a ordem. NRO OP duplicado vira ErrDuplicate.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_orders (` + productionOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ObraNumber, order.NroOp,
		order.TransfPotencia, order.TransfCorrente, order.ChaveSecc, order.Disjuntor, order.BuchaIsoRaio,
		order.GeralStatus, nullIfEmpty(order.Descricao), nullIfEmpty(order.Nobreak), nullIfEmpty(order.CAR167),
		order.OwnerID, nullIfEmpty(order.LastUpdatedByID), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: NRO OP %s", domain.ErrDuplicate, order.NroOp)
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID devolve uma ordem, ou nil se não existe.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return r.getOne(`SELECT `+productionOrderColumns+` FROM production_orders WHERE id = $1`, id)
}

// GetByNroOp devolve a ordem de um NRO OP, ou nil.
func (r *ProductionOrderRepo) GetByNroOp(nroOp string) (*entity.ProductionOrder, error) {
	return r.getOne(`SELECT `+productionOrderColumns+` FROM production_orders WHERE nro_op = $1`, nroOp)
}

// Update sobrescreve os campos editáveis da ordem.
func (r *ProductionOrderRepo) Update(order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET obra_number = $2, nro_op = $3,
		    transf_potencia_status = $4, transf_corrente_status = $5, chave_secc_status = $6,
		    disjuntor_status = $7, bucha_iso_raio_status = $8, geral_status = $9,
		    descricao = $10, nobreak = $11, ca_r167 = $12,
		    last_updated_by_id = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ObraNumber, order.NroOp,
		order.TransfPotencia, order.TransfCorrente, order.ChaveSecc,
		order.Disjuntor, order.BuchaIsoRaio, order.GeralStatus,
		nullIfEmpty(order.Descricao), nullIfEmpty(order.Nobreak), nullIfEmpty(order.CAR167),
		nullIfEmpty(order.LastUpdatedByID), order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: NRO OP %s", domain.ErrDuplicate, order.NroOp)
		}
		return fmt.Errorf("update production order: %w", err)
	}
	return nil
}

// Delete remove a ordem.
func (r *ProductionOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production order: %w", err)
	}
	return nil
}

// List devolve as ordens com filtro opcional por obra e NRO OP.
func (r *ProductionOrderRepo) List(filter repository.ProductionOrderFilter) ([]*entity.ProductionOrder, error) {
	where := ""
	args := []any{}
	if filter.ObraNumber != "" {
		args = append(args, filter.ObraNumber)
		where = fmt.Sprintf(" WHERE obra_number = $%d", len(args))
	}
	if filter.NroOp != "" {
		args = append(args, filter.NroOp)
		if where == "" {
			where = fmt.Sprintf(" WHERE nro_op = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND nro_op = $%d", len(args))
		}
	}
	query := fmt.Sprintf(`SELECT %s FROM production_orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productionOrderColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.ProductionOrder
	for rows.Next() {
		order, err := scanProductionOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	return orders, nil
}

func (r *ProductionOrderRepo) getOne(query, arg string) (*entity.ProductionOrder, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	order, err := scanProductionOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func scanProductionOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	var descricao, nobreak, caR167, lastUpdatedBy *string
	err := row.Scan(
		&o.ID, &o.ObraNumber, &o.NroOp,
		&o.TransfPotencia, &o.TransfCorrente, &o.ChaveSecc, &o.Disjuntor, &o.BuchaIsoRaio,
		&o.GeralStatus, &descricao, &nobreak, &caR167,
		&o.OwnerID, &lastUpdatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan production order: %w", err)
	}
	o.Descricao = derefStr(descricao)
	o.Nobreak = derefStr(nobreak)
	o.CAR167 = derefStr(caR167)
	o.LastUpdatedByID = derefStr(lastUpdatedBy)
	return &o, nil
}
