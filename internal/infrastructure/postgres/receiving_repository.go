package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

var _ repository.ReceivingRepository = (*ReceivingRepo)(nil)

// ReceivingRepo implementação de ReceivingRepository (usável com pool ou tx).
// O bloco de detalhes da conferência vai em uma coluna JSONB com estrutura
// tipada (entity.ConferenceDetails).
type ReceivingRepo struct {
	q Querier
}

// NewReceivingRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewReceivingRepository(q Querier) *ReceivingRepo {
	return &ReceivingRepo{q: q}
}

const receivingColumns = `id, nf_number, supplier, order_number, nf_value, nf_volume, status, entry_date,
	received_by, conference_date, conferred_by, details, resolution_notes, resolved_by, resolved_date`

// Create persiste o recebimento. A constraint única de nf_number vira
// ErrDuplicate (proteção contra a corrida entre o pré-check e o INSERT).
func (r *ReceivingRepo) Create(rec *entity.Receiving) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	details, err := marshalDetails(rec.Details)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO receivings (` + receivingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		rec.ID, rec.NFNumber, rec.Supplier, nullIfEmpty(rec.OrderNumber), rec.NFValue, rec.NFVolume,
		rec.Status, rec.EntryDate, nullIfEmpty(rec.ReceivedBy),
		rec.ConferenceDate, nullIfEmpty(rec.ConferredBy), details,
		nullIfEmpty(rec.ResolutionNotes), nullIfEmpty(rec.ResolvedBy), rec.ResolvedDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: nota fiscal %s", domain.ErrDuplicate, rec.NFNumber)
		}
		return fmt.Errorf("insert receiving: %w", err)
	}
	return nil
}

// GetByID devolve um recebimento, ou nil se não existe.
func (r *ReceivingRepo) GetByID(id string) (*entity.Receiving, error) {
	return r.getOne(`SELECT `+receivingColumns+` FROM receivings WHERE id = $1`, id)
}

// GetForUpdate lê o recebimento bloqueando a linha até o fim da transação.
func (r *ReceivingRepo) GetForUpdate(id string) (*entity.Receiving, error) {
	return r.getOne(`SELECT `+receivingColumns+` FROM receivings WHERE id = $1 FOR UPDATE`, id)
}

// GetByNFNumber devolve o recebimento de uma NF, ou nil.
func (r *ReceivingRepo) GetByNFNumber(nfNumber string) (*entity.Receiving, error) {
	return r.getOne(`SELECT `+receivingColumns+` FROM receivings WHERE nf_number = $1`, nfNumber)
}

// GetByOrderNumber devolve o recebimento associado a um pedido de compra, ou nil.
func (r *ReceivingRepo) GetByOrderNumber(orderNumber string) (*entity.Receiving, error) {
	return r.getOne(`SELECT `+receivingColumns+` FROM receivings WHERE order_number = $1`, orderNumber)
}

// Update grava status, carimbos e o bloco de detalhes.
func (r *ReceivingRepo) Update(rec *entity.Receiving) error {
	details, err := marshalDetails(rec.Details)
	if err != nil {
		return err
	}
	query := `
		UPDATE receivings
		SET status = $2, conference_date = $3, conferred_by = $4, details = $5,
		    resolution_notes = $6, resolved_by = $7, resolved_date = $8
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		rec.ID, rec.Status, rec.ConferenceDate, nullIfEmpty(rec.ConferredBy), details,
		nullIfEmpty(rec.ResolutionNotes), nullIfEmpty(rec.ResolvedBy), rec.ResolvedDate,
	)
	if err != nil {
		return fmt.Errorf("update receiving: %w", err)
	}
	return nil
}

// List aplica os filtros da listagem e devolve a página (entrada mais
// recente primeiro) e o total filtrado. EndDate é inclusivo do dia inteiro
// (comparação < end + 1 dia).
func (r *ReceivingRepo) List(filter repository.ReceivingFilter) ([]*entity.Receiving, int, error) {
	where := ""
	args := []any{}
	and := func(cond string, vals ...any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += cond
		args = append(args, vals...)
	}

	if filter.Search != "" {
		p := len(args) + 1
		and(fmt.Sprintf("(nf_number ILIKE $%d OR supplier ILIKE $%d OR order_number ILIKE $%d)", p, p, p),
			"%"+filter.Search+"%")
	}
	if filter.Status != "" {
		and(fmt.Sprintf("status = $%d", len(args)+1), filter.Status)
	}
	if filter.StartDate != nil {
		and(fmt.Sprintf("entry_date >= $%d", len(args)+1), *filter.StartDate)
	}
	if filter.EndDate != nil {
		and(fmt.Sprintf("entry_date < $%d + interval '1 day'", len(args)+1), *filter.EndDate)
	}
	if filter.IsClientMaterial != nil {
		and(fmt.Sprintf("(details ->> 'isClientMaterial')::boolean = $%d", len(args)+1), *filter.IsClientMaterial)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM receivings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count receivings: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM receivings%s ORDER BY entry_date DESC LIMIT $%d OFFSET $%d`,
		receivingColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list receivings: %w", err)
	}
	defer rows.Close()

	var recs []*entity.Receiving
	for rows.Next() {
		rec, err := scanReceiving(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list receivings: %w", err)
	}
	return recs, total, nil
}

func (r *ReceivingRepo) getOne(query string, arg any) (*entity.Receiving, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	rec, err := scanReceiving(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func scanReceiving(row pgx.Row) (*entity.Receiving, error) {
	var rec entity.Receiving
	var orderNumber, receivedBy, conferredBy, resolutionNotes, resolvedBy *string
	var details []byte
	err := row.Scan(
		&rec.ID, &rec.NFNumber, &rec.Supplier, &orderNumber, &rec.NFValue, &rec.NFVolume,
		&rec.Status, &rec.EntryDate, &receivedBy,
		&rec.ConferenceDate, &conferredBy, &details,
		&resolutionNotes, &resolvedBy, &rec.ResolvedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan receiving: %w", err)
	}
	rec.OrderNumber = derefStr(orderNumber)
	rec.ReceivedBy = derefStr(receivedBy)
	rec.ConferredBy = derefStr(conferredBy)
	rec.ResolutionNotes = derefStr(resolutionNotes)
	rec.ResolvedBy = derefStr(resolvedBy)
	if len(details) > 0 {
		var d entity.ConferenceDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, fmt.Errorf("unmarshal conference details: %w", err)
		}
		rec.Details = &d
	}
	return &rec, nil
}

func marshalDetails(d *entity.ConferenceDetails) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal conference details: %w", err)
	}
	return b, nil
}
