package requisition

import (
	"context"

	"github.com/obrasul/production-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação com o repo de
// requisições. O atendimento direto usa o mesmo guard transacional do
// vínculo na entrada: os dois caminhos disputam a mesma flag.
type TxRunner interface {
	RunRequisition(ctx context.Context, fn func(
		reqRepo repository.RequisitionRepository,
	) error) error
}
