package dto

import "time"

// ProductionOrderRequest body para criar/atualizar uma ordem de produção.
// Os campos de status de componente são texto curto como no quadro da
// fábrica; quando vazios na criação, o default "pendente" é aplicado no
// caso de uso.
type ProductionOrderRequest struct {
	ObraNumber     string `json:"obra_number" validate:"required"`
	NroOp          string `json:"nro_op" validate:"required"`
	TransfPotencia string `json:"transf_potencia_status,omitempty"`
	TransfCorrente string `json:"transf_corrente_status,omitempty"`
	ChaveSecc      string `json:"chave_secc_status,omitempty"`
	Disjuntor      string `json:"disjuntor_status,omitempty"`
	BuchaIsoRaio   string `json:"bucha_iso_raio_status,omitempty"`
	GeralStatus    string `json:"geral_status,omitempty"`
	Descricao      string `json:"descricao,omitempty"`
	Nobreak        string `json:"nobreak,omitempty"`
	CAR167         string `json:"ca_r167,omitempty"`
}

// ProductionOrderResponse ordem de produção na resposta.
type ProductionOrderResponse struct {
	ID              string    `json:"id"`
	ObraNumber      string    `json:"obra_number"`
	NroOp           string    `json:"nro_op"`
	TransfPotencia  string    `json:"transf_potencia_status"`
	TransfCorrente  string    `json:"transf_corrente_status"`
	ChaveSecc       string    `json:"chave_secc_status"`
	Disjuntor       string    `json:"disjuntor_status"`
	BuchaIsoRaio    string    `json:"bucha_iso_raio_status"`
	GeralStatus     string    `json:"geral_status"`
	Descricao       string    `json:"descricao,omitempty"`
	Nobreak         string    `json:"nobreak,omitempty"`
	CAR167          string    `json:"ca_r167,omitempty"`
	OwnerID         string    `json:"owner_id"`
	LastUpdatedByID string    `json:"last_updated_by_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
