package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReceivingRequest body para POST /api/recebimentos (formulário da
// portaria). RequisitionIDToFulfill vincula e atende uma requisição pendente
// na mesma transação da entrada.
type CreateReceivingRequest struct {
	NFNumber               string           `json:"nfNumber" validate:"required"`
	Supplier               string           `json:"supplier" validate:"required"`
	OrderNumber            string           `json:"orderNumber,omitempty"`
	NFValue                *decimal.Decimal `json:"nfValue,omitempty"`
	NFVolume               *int             `json:"nfVolume,omitempty" validate:"omitempty,gt=0"`
	ReceivedBy             string           `json:"receivedBy,omitempty"`
	RequisitionIDToFulfill string           `json:"requisition_id_to_fulfill,omitempty"`
}

// ConferenceDetailsRequest bloco de detalhes preenchido na conferência.
type ConferenceDetailsRequest struct {
	ExpectedDate     time.Time `json:"expectedDate" validate:"required"`
	DeliveryDate     time.Time `json:"deliveryDate" validate:"required"`
	Punctual         bool      `json:"punctual"`
	SupplierNote     string    `json:"supplierNote,omitempty"`
	IssueType        string    `json:"issueType" validate:"required"`
	IssueDescription string    `json:"issueDescription,omitempty"`
	IsClientMaterial bool      `json:"isClientMaterial"`
	RefusedMaterial  bool      `json:"refusedMaterial"`
}

// ConferenceRequest body para PUT /api/recebimentos/:id.
type ConferenceRequest struct {
	ConferredBy string                   `json:"conferredBy" validate:"required,min=2"`
	Details     ConferenceDetailsRequest `json:"details" validate:"required"`
}

// ResolvePendencyRequest body para POST /api/recebimentos/:id/resolve.
type ResolvePendencyRequest struct {
	ResolvedBy      string `json:"resolvedBy" validate:"required,min=2"`
	ResolutionNotes string `json:"resolutionNotes" validate:"required,min=3"`
	FinalStatus     string `json:"finalStatus" validate:"required"`
}

// RejectEntryRequest body para PUT /api/recebimentos/:id/reject.
type RejectEntryRequest struct {
	RejectedBy      string `json:"rejectedBy" validate:"required,min=2"`
	RejectionReason string `json:"rejectionReason" validate:"required,min=3"`
}

// ConferenceDetailsResponse bloco de detalhes na resposta.
type ConferenceDetailsResponse struct {
	ExpectedDate     time.Time `json:"expectedDate"`
	DeliveryDate     time.Time `json:"deliveryDate"`
	Punctual         bool      `json:"punctual"`
	SupplierNote     string    `json:"supplierNote,omitempty"`
	IssueType        string    `json:"issueType"`
	IssueDescription string    `json:"issueDescription,omitempty"`
	IsClientMaterial bool      `json:"isClientMaterial"`
	RefusedMaterial  bool      `json:"refusedMaterial"`
	IssueResolved    bool      `json:"issueResolved,omitempty"`
}

// ReceivingResponse recebimento completo.
type ReceivingResponse struct {
	ID          string           `json:"id"`
	NFNumber    string           `json:"nfNumber"`
	Supplier    string           `json:"supplier"`
	OrderNumber string           `json:"orderNumber,omitempty"`
	NFValue     *decimal.Decimal `json:"nfValue,omitempty"`
	NFVolume    *int             `json:"nfVolume,omitempty"`
	Status      string           `json:"status"`
	EntryDate   time.Time        `json:"entryDate"`
	ReceivedBy  string           `json:"receivedBy,omitempty"`

	ConferenceDate *time.Time                 `json:"conferenceDate,omitempty"`
	ConferredBy    string                     `json:"conferredBy,omitempty"`
	Details        *ConferenceDetailsResponse `json:"details,omitempty"`

	ResolutionNotes string     `json:"resolutionNotes,omitempty"`
	ResolvedBy      string     `json:"resolvedBy,omitempty"`
	ResolvedDate    *time.Time `json:"resolvedDate,omitempty"`
}

// PaginatedReceivings resposta de GET /api/recebimentos.
type PaginatedReceivings struct {
	Items []ReceivingResponse `json:"items"`
	Total int                 `json:"total"`
}
