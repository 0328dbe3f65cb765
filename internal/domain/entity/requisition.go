package entity

import "time"

// Requisition é um pedido interno de material que um Recebimento pode
// atender. IsFulfilled transita false → true exatamente uma vez: ou pelo
// atendimento direto, ou pelo vínculo com um Recebimento no momento da
// entrada. ReceivingID guarda o lado dono do vínculo (no máximo um
// Recebimento por requisição).
type Requisition struct {
	ID                  string
	RequestedBy         string
	OrderNumber         string
	Obra                int
	SubItem             *int
	MaterialDescription string
	RequestDate         time.Time
	IsFulfilled         bool
	ReceivingID         *string
}
