package dto

import "time"

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	Obra                int    `json:"obra" validate:"required,gt=0"`
	SubItem             *int   `json:"sub_item,omitempty" validate:"omitempty,gte=0"`
	RequestedBy         string `json:"requestedBy" validate:"required,min=2"`
	OrderNumber         string `json:"orderNumber" validate:"required"`
	MaterialDescription string `json:"materialDescription" validate:"required,min=3"`
}

// RequisitionResponse requisição na resposta, com o recebimento que a
// atendeu quando houver.
type RequisitionResponse struct {
	ID                  string    `json:"id"`
	Obra                int       `json:"obra"`
	SubItem             *int      `json:"sub_item,omitempty"`
	RequestedBy         string    `json:"requestedBy"`
	OrderNumber         string    `json:"orderNumber"`
	MaterialDescription string    `json:"materialDescription"`
	RequestDate         time.Time `json:"requestDate"`
	IsFulfilled         bool      `json:"isFulfilled"`
	ReceivingID         *string   `json:"receiving_id,omitempty"`
}
