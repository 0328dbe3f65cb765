package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
	"github.com/obrasul/production-api/internal/domain/workflow"
)

// UseCase é o motor de Recebimentos: entrada → conferência → (tratativa |
// rejeição), com o vínculo opcional a uma requisição pendente.
type UseCase struct {
	txRunner TxRunner
	recRepo  repository.ReceivingRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner, recRepo repository.ReceivingRepository) *UseCase {
	return &UseCase{txRunner: txRunner, recRepo: recRepo}
}

// Intake registra a entrada de uma nota fiscal. NF duplicada ou pedido de
// compra já associado a outro recebimento → ErrDuplicate. Quando o request
// traz requisition_id_to_fulfill, a criação do recebimento e o atendimento
// da requisição acontecem na mesma transação: ou as duas escritas entram,
// ou nenhuma.
func (uc *UseCase) Intake(ctx context.Context, in dto.CreateReceivingRequest) (*dto.ReceivingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	rec := &entity.Receiving{
		NFNumber:    in.NFNumber,
		Supplier:    in.Supplier,
		OrderNumber: in.OrderNumber,
		NFValue:     in.NFValue,
		NFVolume:    in.NFVolume,
		Status:      entity.ReceivingStatusAwaitingConference,
		EntryDate:   time.Now(),
		ReceivedBy:  in.ReceivedBy,
	}

	err := uc.txRunner.RunReceiving(ctx, func(
		recRepo repository.ReceivingRepository,
		reqRepo repository.RequisitionRepository,
	) error {
		existing, err := recRepo.GetByNFNumber(in.NFNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: a nota fiscal nº %s já foi registrada", domain.ErrDuplicate, in.NFNumber)
		}
		if in.OrderNumber != "" {
			other, err := recRepo.GetByOrderNumber(in.OrderNumber)
			if err != nil {
				return err
			}
			if other != nil {
				return fmt.Errorf("%w: o pedido de compra nº %s já foi associado ao recebimento da NF %s",
					domain.ErrDuplicate, in.OrderNumber, other.NFNumber)
			}
		}

		if err := recRepo.Create(rec); err != nil {
			return err
		}

		if in.RequisitionIDToFulfill == "" {
			return nil
		}
		// check-then-set sob FOR UPDATE: a flag só vira uma vez
		req, err := reqRepo.GetForUpdate(in.RequisitionIDToFulfill)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("%w: requisição %s", domain.ErrNotFound, in.RequisitionIDToFulfill)
		}
		if req.IsFulfilled {
			return fmt.Errorf("%w: a requisição %s já foi atendida", domain.ErrConflict, req.ID)
		}
		return reqRepo.MarkFulfilled(req.ID, &rec.ID)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(rec), nil
}

// Conference grava o resultado da conferência. Só é permitida a partir de
// AWAITING_CONFERENCE; a ordem de decisão do status final é material
// recusado → REJECTED, pendência → PENDING, senão CONFERRED. O
// check-then-set sobre o status roda com a linha bloqueada: duas
// conferências concorrentes do mesmo recebimento resultam em uma gravada e
// uma ErrInvalidState.
func (uc *UseCase) Conference(ctx context.Context, id string, in dto.ConferenceRequest) (*dto.ReceivingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !workflow.ValidIssueType(in.Details.IssueType) {
		return nil, fmt.Errorf("%w: tipo de pendência desconhecido %q", domain.ErrInvalidInput, in.Details.IssueType)
	}

	var out *entity.Receiving
	err := uc.txRunner.RunReceiving(ctx, func(
		recRepo repository.ReceivingRepository,
		_ repository.RequisitionRepository,
	) error {
		rec, err := recRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Status != entity.ReceivingStatusAwaitingConference {
			return fmt.Errorf("%w: este recebimento já foi processado (status atual: %s)",
				domain.ErrInvalidState, rec.Status)
		}

		now := time.Now()
		details := entity.ConferenceDetails{
			ExpectedDate:     in.Details.ExpectedDate,
			DeliveryDate:     in.Details.DeliveryDate,
			Punctual:         in.Details.Punctual,
			SupplierNote:     in.Details.SupplierNote,
			IssueType:        in.Details.IssueType,
			IssueDescription: in.Details.IssueDescription,
			IsClientMaterial: in.Details.IsClientMaterial,
			RefusedMaterial:  in.Details.RefusedMaterial,
		}
		rec.ConferredBy = in.ConferredBy
		rec.ConferenceDate = &now
		rec.Details = &details
		rec.Status = workflow.ResolveConferenceStatus(details)

		if err := recRepo.Update(rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// ResolvePendency fecha uma pendência aberta na conferência. Só é permitida
// a partir de PENDING e o destino deve ser CONFERRED ou REJECTED.
func (uc *UseCase) ResolvePendency(ctx context.Context, id string, in dto.ResolvePendencyRequest) (*dto.ReceivingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !workflow.ValidFinalStatus(in.FinalStatus) {
		return nil, fmt.Errorf("%w: status final inválido %q", domain.ErrInvalidInput, in.FinalStatus)
	}

	var out *entity.Receiving
	err := uc.txRunner.RunReceiving(ctx, func(
		recRepo repository.ReceivingRepository,
		_ repository.RequisitionRepository,
	) error {
		rec, err := recRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Status != entity.ReceivingStatusPending {
			return fmt.Errorf("%w: este recebimento não está com pendência aberta (status atual: %s)",
				domain.ErrInvalidState, rec.Status)
		}

		now := time.Now()
		rec.ResolvedBy = in.ResolvedBy
		rec.ResolutionNotes = in.ResolutionNotes
		rec.ResolvedDate = &now
		rec.Status = in.FinalStatus
		if rec.Details != nil {
			rec.Details.IssueResolved = true
		}

		if err := recRepo.Update(rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// RejectEntry rejeita a entrada ainda em AWAITING_CONFERENCE, pulando a
// conferência. Estado terminal.
func (uc *UseCase) RejectEntry(ctx context.Context, id string, in dto.RejectEntryRequest) (*dto.ReceivingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var out *entity.Receiving
	err := uc.txRunner.RunReceiving(ctx, func(
		recRepo repository.ReceivingRepository,
		_ repository.RequisitionRepository,
	) error {
		rec, err := recRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Status != entity.ReceivingStatusAwaitingConference {
			return fmt.Errorf("%w: apenas recebimentos aguardando conferência podem ser rejeitados na entrada (status atual: %s)",
				domain.ErrInvalidState, rec.Status)
		}

		now := time.Now()
		rec.Status = entity.ReceivingStatusEntryRejected
		rec.ResolutionNotes = fmt.Sprintf("Rejeitado por: %s. Motivo: %s", in.RejectedBy, in.RejectionReason)
		rec.ResolvedBy = in.RejectedBy
		rec.ResolvedDate = &now

		if err := recRepo.Update(rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// List devolve a página filtrada (entrada mais recente primeiro).
func (uc *UseCase) List(ctx context.Context, filter repository.ReceivingFilter) (*dto.PaginatedReceivings, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	recs, total, err := uc.recRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.PaginatedReceivings{Items: make([]dto.ReceivingResponse, 0, len(recs)), Total: total}
	for _, rec := range recs {
		out.Items = append(out.Items, *toResponse(rec))
	}
	return out, nil
}

func toResponse(rec *entity.Receiving) *dto.ReceivingResponse {
	resp := &dto.ReceivingResponse{
		ID:              rec.ID,
		NFNumber:        rec.NFNumber,
		Supplier:        rec.Supplier,
		OrderNumber:     rec.OrderNumber,
		NFValue:         rec.NFValue,
		NFVolume:        rec.NFVolume,
		Status:          rec.Status,
		EntryDate:       rec.EntryDate,
		ReceivedBy:      rec.ReceivedBy,
		ConferenceDate:  rec.ConferenceDate,
		ConferredBy:     rec.ConferredBy,
		ResolutionNotes: rec.ResolutionNotes,
		ResolvedBy:      rec.ResolvedBy,
		ResolvedDate:    rec.ResolvedDate,
	}
	if d := rec.Details; d != nil {
		resp.Details = &dto.ConferenceDetailsResponse{
			ExpectedDate:     d.ExpectedDate,
			DeliveryDate:     d.DeliveryDate,
			Punctual:         d.Punctual,
			SupplierNote:     d.SupplierNote,
			IssueType:        d.IssueType,
			IssueDescription: d.IssueDescription,
			IsClientMaterial: d.IsClientMaterial,
			RefusedMaterial:  d.RefusedMaterial,
			IssueResolved:    d.IssueResolved,
		}
	}
	return resp
}
