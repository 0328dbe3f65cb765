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

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementação de RequisitionRepository (usável com pool ou tx).
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `id, requested_by, order_number, obra, sub_item, material_description, request_date, is_fulfilled, receiving_id`

// Create persiste a requisição (pendente).
func (r *RequisitionRepo) Create(req *entity.Requisition) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.RequestedBy, req.OrderNumber, req.Obra, req.SubItem,
		req.MaterialDescription, req.RequestDate, req.IsFulfilled, req.ReceivingID,
	)
	if err != nil {
		return fmt.Errorf("insert requisition: %w", err)
	}
	return nil
}

// GetByID devolve uma requisição, ou nil se não existe.
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	return r.getOne(`SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1`, id)
}

// GetForUpdate lê bloqueando a linha: o check-then-set de is_fulfilled fica
// serializado com qualquer outra tentativa de atendimento.
func (r *RequisitionRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	return r.getOne(`SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1 FOR UPDATE`, id)
}

// MarkFulfilled grava is_fulfilled=true e, quando houver, o recebimento que
// atendeu. A constraint única de receiving_id garante no máximo um vínculo
// por recebimento.
func (r *RequisitionRepo) MarkFulfilled(id string, receivingID *string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE requisitions SET is_fulfilled = TRUE, receiving_id = COALESCE($2, receiving_id) WHERE id = $1`,
		id, receivingID)
	if err != nil {
		return fmt.Errorf("mark requisition fulfilled: %w", err)
	}
	return nil
}

// ListPending devolve as requisições não atendidas, da mais antiga à mais
// recente.
func (r *RequisitionRepo) ListPending() ([]*entity.Requisition, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+requisitionColumns+` FROM requisitions
		WHERE is_fulfilled = FALSE
		ORDER BY request_date`)
	if err != nil {
		return nil, fmt.Errorf("list pending requisitions: %w", err)
	}
	defer rows.Close()

	var reqs []*entity.Requisition
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending requisitions: %w", err)
	}
	return reqs, nil
}

func (r *RequisitionRepo) getOne(query, id string) (*entity.Requisition, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	req, err := scanRequisition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

func scanRequisition(row pgx.Row) (*entity.Requisition, error) {
	var req entity.Requisition
	err := row.Scan(
		&req.ID, &req.RequestedBy, &req.OrderNumber, &req.Obra, &req.SubItem,
		&req.MaterialDescription, &req.RequestDate, &req.IsFulfilled, &req.ReceivingID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan requisition: %w", err)
	}
	return &req, nil
}
