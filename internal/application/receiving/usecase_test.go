package receiving_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/application/receiving"
	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória. O fakeTxRunner tira um snapshot antes do callback e o
// restaura quando o callback falha, imitando o rollback da transação real.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	recs      map[string]*entity.Receiving
	reqs      map[string]*entity.Requisition
	lastLimit int
}

func newMemState() *memState {
	return &memState{
		recs: map[string]*entity.Receiving{},
		reqs: map[string]*entity.Requisition{},
	}
}

func (s *memState) snapshot() *memState {
	c := newMemState()
	for id, r := range s.recs {
		cp := *r
		c.recs[id] = &cp
	}
	for id, r := range s.reqs {
		cp := *r
		c.reqs[id] = &cp
	}
	return c
}

func (s *memState) restore(from *memState) {
	s.recs = from.recs
	s.reqs = from.reqs
}

type memRecRepo struct{ s *memState }

func (r *memRecRepo) Create(rec *entity.Receiving) error {
	rec.ID = uuid.NewString()
	r.s.recs[rec.ID] = rec
	return nil
}

func (r *memRecRepo) GetByID(id string) (*entity.Receiving, error) {
	return r.s.recs[id], nil
}

func (r *memRecRepo) GetForUpdate(id string) (*entity.Receiving, error) {
	return r.s.recs[id], nil
}

func (r *memRecRepo) GetByNFNumber(nfNumber string) (*entity.Receiving, error) {
	for _, rec := range r.s.recs {
		if rec.NFNumber == nfNumber {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *memRecRepo) GetByOrderNumber(orderNumber string) (*entity.Receiving, error) {
	for _, rec := range r.s.recs {
		if rec.OrderNumber == orderNumber {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *memRecRepo) Update(rec *entity.Receiving) error {
	if _, ok := r.s.recs[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.recs[rec.ID] = rec
	return nil
}

func (r *memRecRepo) List(filter repository.ReceivingFilter) ([]*entity.Receiving, int, error) {
	r.s.lastLimit = filter.Limit
	var out []*entity.Receiving
	for _, rec := range r.s.recs {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		out = append(out, rec)
	}
	return out, len(out), nil
}

type memReqRepo struct{ s *memState }

func (r *memReqRepo) Create(req *entity.Requisition) error {
	req.ID = uuid.NewString()
	r.s.reqs[req.ID] = req
	return nil
}

func (r *memReqRepo) GetByID(id string) (*entity.Requisition, error) {
	return r.s.reqs[id], nil
}

func (r *memReqRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	return r.s.reqs[id], nil
}

func (r *memReqRepo) MarkFulfilled(id string, receivingID *string) error {
	req, ok := r.s.reqs[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.IsFulfilled = true
	if receivingID != nil {
		req.ReceivingID = receivingID
	}
	return nil
}

func (r *memReqRepo) ListPending() ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, req := range r.s.reqs {
		if !req.IsFulfilled {
			out = append(out, req)
		}
	}
	return out, nil
}

// fakeTxRunner serializa os callbacks com um mutex, como o FOR UPDATE
// serializa transações sobre a mesma linha no banco real.
type fakeTxRunner struct {
	s  *memState
	mu sync.Mutex
}

func (tx *fakeTxRunner) RunReceiving(_ context.Context, fn func(
	recRepo repository.ReceivingRepository,
	reqRepo repository.RequisitionRepository,
) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	snap := tx.s.snapshot()
	if err := fn(&memRecRepo{tx.s}, &memReqRepo{tx.s}); err != nil {
		tx.s.restore(snap)
		return err
	}
	return nil
}

func newUseCase() (*receiving.UseCase, *memState) {
	s := newMemState()
	return receiving.NewUseCase(&fakeTxRunner{s: s}, &memRecRepo{s}), s
}

func intakeRequest() dto.CreateReceivingRequest {
	value := decimal.NewFromFloat(15400.50)
	volume := 3
	return dto.CreateReceivingRequest{
		NFNumber:    "000123456",
		Supplier:    "WEG Equipamentos",
		OrderNumber: "PC-2024-081",
		NFValue:     &value,
		NFVolume:    &volume,
		ReceivedBy:  "Portaria 1",
	}
}

func conferenceRequest(issue string, refused bool) dto.ConferenceRequest {
	return dto.ConferenceRequest{
		ConferredBy: "Almoxarife Carla",
		Details: dto.ConferenceDetailsRequest{
			ExpectedDate:    time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
			DeliveryDate:    time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC),
			Punctual:        false,
			IssueType:       issue,
			RefusedMaterial: refused,
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Intake
// ──────────────────────────────────────────────────────────────────────────────

func TestIntake_EntradaSimples(t *testing.T) {
	uc, s := newUseCase()

	out, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.ReceivingStatusAwaitingConference, out.Status)
	assert.False(t, out.EntryDate.IsZero())
	assert.Len(t, s.recs, 1)
}

func TestIntake_NFDuplicada(t *testing.T) {
	uc, s := newUseCase()

	_, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	in := intakeRequest()
	in.OrderNumber = "PC-2024-099" // pedido diferente, mesma NF
	_, err = uc.Intake(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, s.recs, 1, "a segunda entrada não pode ser persistida")
}

func TestIntake_PedidoJaAssociado(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	in := intakeRequest()
	in.NFNumber = "000999999" // NF diferente, mesmo pedido
	_, err = uc.Intake(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIntake_VinculaEAtendeRequisicao(t *testing.T) {
	uc, s := newUseCase()
	req := &entity.Requisition{RequestedBy: "Eletricista Pedro", OrderNumber: "PC-2024-081"}
	require.NoError(t, (&memReqRepo{s}).Create(req))

	in := intakeRequest()
	in.RequisitionIDToFulfill = req.ID
	out, err := uc.Intake(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, s.reqs[req.ID].IsFulfilled)
	require.NotNil(t, s.reqs[req.ID].ReceivingID)
	assert.Equal(t, out.ID, *s.reqs[req.ID].ReceivingID,
		"a requisição deve apontar para o recebimento que a atendeu")
}

// Falhando o atendimento da requisição, o recebimento também não entra: as
// duas escritas pertencem à mesma transação.
func TestIntake_RequisicaoJaAtendidaDesfazTudo(t *testing.T) {
	uc, s := newUseCase()
	req := &entity.Requisition{RequestedBy: "Eletricista Pedro", OrderNumber: "PC-2024-081", IsFulfilled: true}
	require.NoError(t, (&memReqRepo{s}).Create(req))

	in := intakeRequest()
	in.RequisitionIDToFulfill = req.ID
	_, err := uc.Intake(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, s.recs, "o recebimento criado na mesma transação deve ser desfeito")
}

func TestIntake_RequisicaoInexistente(t *testing.T) {
	uc, s := newUseCase()

	in := intakeRequest()
	in.RequisitionIDToFulfill = uuid.NewString()
	_, err := uc.Intake(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.recs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conference
// ──────────────────────────────────────────────────────────────────────────────

func seedReceiving(t *testing.T, uc *receiving.UseCase) string {
	t.Helper()
	out, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)
	return out.ID
}

func TestConference_SemPendencia(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)

	out, err := uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeNone, false))
	require.NoError(t, err)

	assert.Equal(t, entity.ReceivingStatusConferred, out.Status)
	assert.Equal(t, "Almoxarife Carla", out.ConferredBy)
	require.NotNil(t, out.ConferenceDate)
	require.NotNil(t, out.Details)
	assert.False(t, out.Details.IssueResolved)
}

func TestConference_ComPendenciaViraPending(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)

	out, err := uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeDamage, false))
	require.NoError(t, err)
	assert.Equal(t, entity.ReceivingStatusPending, out.Status)
}

func TestConference_MaterialRecusadoGanhaDaPendencia(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)

	out, err := uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeDamage, true))
	require.NoError(t, err)
	assert.Equal(t, entity.ReceivingStatusRejected, out.Status)
}

func TestConference_DuasVezes(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)

	_, err := uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeNone, false))
	require.NoError(t, err)

	_, err = uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeNone, false))
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"um recebimento já conferido não aceita nova conferência")
}

func TestConference_ConcorrenteSoUmaGanha(t *testing.T) {
	uc, s := newUseCase()
	id := seedReceiving(t, uc)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeNone, false))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var conferidas, barradas int
	for err := range errs {
		switch {
		case err == nil:
			conferidas++
		case errors.Is(err, domain.ErrInvalidState):
			barradas++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, conferidas, "exatamente uma conferência deve ser gravada")
	assert.Equal(t, 1, barradas, "a outra deve ver o status já processado")
	assert.Equal(t, entity.ReceivingStatusConferred, s.recs[id].Status)
}

func TestConference_TipoDePendenciaDesconhecido(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)

	_, err := uc.Conference(context.Background(), id, conferenceRequest("AVARIA", false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConference_RecebimentoInexistente(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Conference(context.Background(), uuid.NewString(), conferenceRequest(entity.IssueTypeNone, false))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolvePendency
// ──────────────────────────────────────────────────────────────────────────────

func seedPending(t *testing.T, uc *receiving.UseCase) string {
	t.Helper()
	id := seedReceiving(t, uc)
	_, err := uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeWrongQuantity, false))
	require.NoError(t, err)
	return id
}

func TestResolvePendency_FechaComoConferido(t *testing.T) {
	uc, _ := newUseCase()
	id := seedPending(t, uc)

	out, err := uc.ResolvePendency(context.Background(), id, dto.ResolvePendencyRequest{
		ResolvedBy:      "Comprador Luís",
		ResolutionNotes: "Fornecedor enviou a diferença na NF 000123500",
		FinalStatus:     entity.ReceivingStatusConferred,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReceivingStatusConferred, out.Status)
	require.NotNil(t, out.ResolvedDate)
	require.NotNil(t, out.Details)
	assert.True(t, out.Details.IssueResolved)
}

func TestResolvePendency_FechaComoRejeitado(t *testing.T) {
	uc, _ := newUseCase()
	id := seedPending(t, uc)

	out, err := uc.ResolvePendency(context.Background(), id, dto.ResolvePendencyRequest{
		ResolvedBy:      "Comprador Luís",
		ResolutionNotes: "Material devolvido integralmente",
		FinalStatus:     entity.ReceivingStatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceivingStatusRejected, out.Status)
}

func TestResolvePendency_DestinoInvalido(t *testing.T) {
	uc, _ := newUseCase()
	id := seedPending(t, uc)

	_, err := uc.ResolvePendency(context.Background(), id, dto.ResolvePendencyRequest{
		ResolvedBy:      "Comprador Luís",
		ResolutionNotes: "nota qualquer",
		FinalStatus:     entity.ReceivingStatusPending,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolvePendency_SemPendenciaAberta(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc) // ainda AWAITING_CONFERENCE

	_, err := uc.ResolvePendency(context.Background(), id, dto.ResolvePendencyRequest{
		ResolvedBy:      "Comprador Luís",
		ResolutionNotes: "nota qualquer",
		FinalStatus:     entity.ReceivingStatusConferred,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// RejectEntry
// ──────────────────────────────────────────────────────────────────────────────

func TestRejectEntry_AntesDaConferencia(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)

	out, err := uc.RejectEntry(context.Background(), id, dto.RejectEntryRequest{
		RejectedBy:      "Portaria 1",
		RejectionReason: "Caminhão chegou fora do horário de recebimento",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReceivingStatusEntryRejected, out.Status)
	assert.Equal(t, "Rejeitado por: Portaria 1. Motivo: Caminhão chegou fora do horário de recebimento",
		out.ResolutionNotes)
	require.NotNil(t, out.ResolvedDate)
}

func TestRejectEntry_DepoisDaConferencia(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)
	_, err := uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeNone, false))
	require.NoError(t, err)

	_, err = uc.RejectEntry(context.Background(), id, dto.RejectEntryRequest{
		RejectedBy:      "Portaria 1",
		RejectionReason: "motivo qualquer",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorStatus(t *testing.T) {
	uc, _ := newUseCase()
	id := seedReceiving(t, uc)

	in := intakeRequest()
	in.NFNumber = "000777777"
	in.OrderNumber = "PC-2024-porta-2"
	_, err := uc.Intake(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Conference(context.Background(), id, conferenceRequest(entity.IssueTypeNone, false))
	require.NoError(t, err)

	out, err := uc.List(context.Background(), repository.ReceivingFilter{
		Status: entity.ReceivingStatusConferred,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, id, out.Items[0].ID)
	assert.Equal(t, 1, out.Total)
}

func TestList_LimiteForaDoIntervaloUsaODefault(t *testing.T) {
	uc, s := newUseCase()
	seedReceiving(t, uc)

	_, err := uc.List(context.Background(), repository.ReceivingFilter{})
	require.NoError(t, err)
	assert.Equal(t, 20, s.lastLimit, "page_size ausente cai no mesmo default do handler")

	_, err = uc.List(context.Background(), repository.ReceivingFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 20, s.lastLimit)
}
