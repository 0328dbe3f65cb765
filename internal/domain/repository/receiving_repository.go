package repository

import (
	"time"

	"github.com/obrasul/production-api/internal/domain/entity"
)

// ReceivingFilter são os filtros da listagem de recebimentos. Search aplica
// ILIKE sobre nfNumber, supplier e orderNumber. EndDate é inclusivo do dia
// inteiro.
type ReceivingFilter struct {
	Search           string
	Status           string
	StartDate        *time.Time
	EndDate          *time.Time
	IsClientMaterial *bool
	Limit            int
	Offset           int
}

// ReceivingRepository define a porta de persistência dos recebimentos.
type ReceivingRepository interface {
	Create(rec *entity.Receiving) error
	GetByID(id string) (*entity.Receiving, error)
	// GetForUpdate lê o recebimento bloqueando a linha. As transições de
	// conferência, tratativa e rejeição fazem check-then-set sobre Status e
	// precisam acontecer dentro de uma única transação para dois chamados
	// concorrentes não processarem o mesmo recebimento duas vezes.
	GetForUpdate(id string) (*entity.Receiving, error)
	GetByNFNumber(nfNumber string) (*entity.Receiving, error)
	GetByOrderNumber(orderNumber string) (*entity.Receiving, error)
	// Update grava status, carimbos de conferência/tratativa e o bloco de
	// detalhes.
	Update(rec *entity.Receiving) error
	// List devolve a página (entrada mais recente primeiro) e o total filtrado.
	List(filter ReceivingFilter) ([]*entity.Receiving, int, error)
}
