package entity

import "time"

// ProductionOrder é a ordem de produção acompanhada no painel, com o status
// de fabricação de cada componente do transformador. Os status de componente
// são texto livre curto ("pendente", "produção", "concluído"), como no
// quadro físico da fábrica.
type ProductionOrder struct {
	ID              string
	ObraNumber      string
	NroOp           string
	TransfPotencia  string
	TransfCorrente  string
	ChaveSecc       string
	Disjuntor       string
	BuchaIsoRaio    string
	GeralStatus     string
	Descricao       string
	Nobreak         string
	CAR167          string
	OwnerID         string
	LastUpdatedByID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
