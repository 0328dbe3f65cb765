package repository

import "github.com/obrasul/production-api/internal/domain/entity"

// RequisitionRepository define a porta de persistência das requisições.
type RequisitionRepository interface {
	Create(req *entity.Requisition) error
	GetByID(id string) (*entity.Requisition, error)
	// GetForUpdate lê a requisição bloqueando a linha. O check-then-set de
	// IsFulfilled (atendimento direto ou vínculo na entrada) acontece dentro
	// de uma única transação para a flag nunca virar duas vezes.
	GetForUpdate(id string) (*entity.Requisition, error)
	// MarkFulfilled grava IsFulfilled=true e, quando houver, o recebimento que
	// atendeu a requisição.
	MarkFulfilled(id string, receivingID *string) error
	ListPending() ([]*entity.Requisition, error)
}
