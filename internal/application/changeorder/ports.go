package changeorder

import (
	"context"

	"github.com/obrasul/production-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade para o motor de C.A.:
// criação do documento com os itens, e leitura-bloqueio-decisão-escrita da
// regra de agregação de status.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		caRepo repository.ChangeOrderRepository,
		itemRepo repository.ChangeItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
