package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obrasul/production-api/internal/application/changeorder"
	"github.com/obrasul/production-api/internal/application/receiving"
	"github.com/obrasul/production-api/internal/application/requisition"
	"github.com/obrasul/production-api/internal/domain/repository"
)

// Garante que TxRunner implementa os ports transacionais dos casos de uso.
var _ changeorder.TxRunner = (*TxRunner)(nil)
var _ receiving.TxRunner = (*TxRunner)(nil)
var _ requisition.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação com os repos do motor de C.A. e faz Commit ou
// Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	caRepo repository.ChangeOrderRepository,
	itemRepo repository.ChangeItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewChangeOrderRepository(tx), NewChangeItemRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving inicia uma transação com os repos de recebimento e
// requisição (entrada com vínculo).
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	recRepo repository.ReceivingRepository,
	reqRepo repository.RequisitionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewReceivingRepository(tx), NewRequisitionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRequisition inicia uma transação só com o repo de requisições
// (atendimento direto).
func (r *TxRunner) RunRequisition(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRequisitionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
