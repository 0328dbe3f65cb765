package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de um Recebimento.
// Máquina de estados: AWAITING_CONFERENCE → CONFERRED | REJECTED | PENDING
// (via conferência); PENDING → CONFERRED | REJECTED (via tratativa);
// AWAITING_CONFERENCE → ENTRY_REJECTED (rejeição de entrada, terminal).
const (
	ReceivingStatusAwaitingConference = "AWAITING_CONFERENCE"
	ReceivingStatusConferred          = "CONFERRED"
	ReceivingStatusRejected           = "REJECTED"
	ReceivingStatusPending            = "PENDING"
	ReceivingStatusEntryRejected      = "ENTRY_REJECTED"
)

// Tipo de pendência encontrada na conferência.
const (
	IssueTypeNone          = "NONE"
	IssueTypeDamage        = "DAMAGE"
	IssueTypeWrongItem     = "WRONG_ITEM"
	IssueTypeWrongQuantity = "WRONG_QUANTITY"
	IssueTypeOther         = "OTHER"
)

// ConferenceDetails é o bloco estruturado preenchido na conferência.
// Persistido como estrutura tipada (JSONB com campos explícitos), não como
// blob sem esquema, para preservar os enums na fronteira de armazenamento.
type ConferenceDetails struct {
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

// Receiving representa a entrada de uma nota fiscal no almoxarifado, do
// registro na portaria até a conferência, tratativa ou rejeição.
type Receiving struct {
	ID          string
	NFNumber    string
	Supplier    string
	OrderNumber string
	NFValue     *decimal.Decimal
	NFVolume    *int
	Status      string
	EntryDate   time.Time
	ReceivedBy  string

	ConferenceDate *time.Time
	ConferredBy    string
	Details        *ConferenceDetails

	ResolutionNotes string
	ResolvedBy      string
	ResolvedDate    *time.Time
}
