package receiving

import (
	"context"

	"github.com/obrasul/production-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação que inclui os repos
// de recebimento e de requisição. A entrada com vínculo de requisição exige
// as duas escritas (criar recebimento, atender requisição) no mesmo commit.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		recRepo repository.ReceivingRepository,
		reqRepo repository.RequisitionRepository,
	) error) error
}
