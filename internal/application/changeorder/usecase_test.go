package changeorder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasul/production-api/internal/application/changeorder"
	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/domain"
	"github.com/obrasul/production-api/internal/domain/entity"
	"github.com/obrasul/production-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória — implementam as portas de repositório sobre mapas, sem BD.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	cas       map[string]*entity.ChangeOrder
	items     map[string]*entity.ChangeItem
	movs      []*entity.StockMovement
	lastLimit int
}

func newMemState() *memState {
	return &memState{
		cas:   map[string]*entity.ChangeOrder{},
		items: map[string]*entity.ChangeItem{},
	}
}

type memCARepo struct{ s *memState }

func (r *memCARepo) Create(ca *entity.ChangeOrder) error {
	ca.ID = uuid.NewString()
	for _, it := range ca.Items {
		it.ID = uuid.NewString()
		it.CAID = ca.ID
		r.s.items[it.ID] = it
	}
	r.s.cas[ca.ID] = ca
	return nil
}

func (r *memCARepo) GetByID(id string) (*entity.ChangeOrder, error) {
	return r.s.cas[id], nil
}

func (r *memCARepo) GetForUpdate(id string) (*entity.ChangeOrder, error) {
	return r.s.cas[id], nil
}

func (r *memCARepo) UpdateStatus(id, status string) error {
	ca, ok := r.s.cas[id]
	if !ok {
		return domain.ErrNotFound
	}
	ca.Status = status
	return nil
}

func (r *memCARepo) List(limit, offset int) ([]*entity.ChangeOrder, int, error) {
	r.s.lastLimit = limit
	out := make([]*entity.ChangeOrder, 0, len(r.s.cas))
	for _, ca := range r.s.cas {
		out = append(out, ca)
	}
	return out, len(out), nil
}

type memItemRepo struct{ s *memState }

func (r *memItemRepo) Create(item *entity.ChangeItem) error {
	item.ID = uuid.NewString()
	r.s.items[item.ID] = item
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.ChangeItem, error) {
	return r.s.items[id], nil
}

func (r *memItemRepo) UpdateStockStatus(id, status string) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.StockStatus = status
	return nil
}

func (r *memItemRepo) ListByCA(caID string) ([]*entity.ChangeItem, error) {
	var out []*entity.ChangeItem
	for _, it := range r.s.items {
		if it.CAID == caID {
			out = append(out, it)
		}
	}
	return out, nil
}

type memMovRepo struct{ s *memState }

func (r *memMovRepo) Create(mov *entity.StockMovement) error {
	mov.ID = uuid.NewString()
	r.s.movs = append(r.s.movs, mov)
	return nil
}

func (r *memMovRepo) ListByCA(caID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movs {
		if m.CAID == caID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner executa o callback direto sobre os fakes, sem transação real.
type fakeTxRunner struct{ s *memState }

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	caRepo repository.ChangeOrderRepository,
	itemRepo repository.ChangeItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(&memCARepo{tx.s}, &memItemRepo{tx.s}, &memMovRepo{tx.s})
}

func newUseCase() (*changeorder.UseCase, *memState) {
	s := newMemState()
	uc := changeorder.NewUseCase(&fakeTxRunner{s}, &memCARepo{s})
	return uc, s
}

func validRequest() dto.CreateChangeOrderRequest {
	return dto.CreateChangeOrderRequest{
		Obra:          1050,
		Op:            3,
		RequesterInfo: "João / Elétrica",
		Reason:        "Material especificado errado no projeto",
		ItemAdded: &dto.MaterialInfo{
			MaterialDescription: "Disjuntor 3P 63A",
			MaterialCode:        "DSJ-63",
			Quantity:            2,
		},
		ItemRemoved: &dto.MaterialInfo{
			MaterialDescription: "Disjuntor 3P 40A",
			MaterialCode:        "DSJ-40",
			Quantity:            2,
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SubstituicaoCompleta(t *testing.T) {
	uc, s := newUseCase()

	out, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.CAStatusPendingStockAnalysis, out.Status)
	require.NotNil(t, out.ItemAdded)
	require.NotNil(t, out.ItemRemoved)
	assert.Equal(t, entity.StockStatusPendingVerification, out.ItemAdded.StockStatus,
		"todo item nasce pendente de verificação")
	assert.Equal(t, entity.StockStatusPendingVerification, out.ItemRemoved.StockStatus)
	assert.Len(t, s.items, 2)
}

func TestCreate_ApenasUmItemBasta(t *testing.T) {
	uc, _ := newUseCase()

	in := validRequest()
	in.ItemRemoved = nil
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotNil(t, out.ItemAdded)
	assert.Nil(t, out.ItemRemoved)
}

func TestCreate_SemNenhumItem(t *testing.T) {
	uc, _ := newUseCase()

	in := validRequest()
	in.ItemAdded = nil
	in.ItemRemoved = nil
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_DescricaoPlaceholder(t *testing.T) {
	uc, _ := newUseCase()

	in := validRequest()
	in.ItemAdded.MaterialDescription = "string"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_SubstituicaoDoMesmoMaterial(t *testing.T) {
	uc, _ := newUseCase()

	in := validRequest()
	in.ItemRemoved.MaterialCode = in.ItemAdded.MaterialCode
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"adicionar e retirar o mesmo código deve ser rejeitado")
}

func TestCreate_MotivoCurtoReprovaNaValidacao(t *testing.T) {
	uc, _ := newUseCase()

	in := validRequest()
	in.Reason = "curto"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PageSizeForaDoIntervaloUsaODefault(t *testing.T) {
	uc, s := newUseCase()
	_, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.List(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, s.lastLimit, "page_size ausente cai no mesmo default do handler")

	_, err = uc.List(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 20, s.lastLimit)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateItemStockStatus — regra de agregação
// ──────────────────────────────────────────────────────────────────────────────

// cria um C.A. de substituição e devolve os ids (ca, itemAdd, itemRemove).
func seedCA(t *testing.T, uc *changeorder.UseCase) (string, string, string) {
	t.Helper()
	out, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	return out.ID, out.ItemAdded.ID, out.ItemRemoved.ID
}

func TestUpdateStockStatus_PromoveParaProntoQuandoTudoEmEstoque(t *testing.T) {
	uc, s := newUseCase()
	caID, addID, remID := seedCA(t, uc)

	_, err := uc.UpdateItemStockStatus(context.Background(), addID, entity.StockStatusInStock)
	require.NoError(t, err)
	assert.Equal(t, entity.CAStatusPendingStockAnalysis, s.cas[caID].Status,
		"com um item ainda pendente o C.A. não muda")

	_, err = uc.UpdateItemStockStatus(context.Background(), remID, entity.StockStatusInStock)
	require.NoError(t, err)
	assert.Equal(t, entity.CAStatusReadyForExecution, s.cas[caID].Status)
}

func TestUpdateStockStatus_QualquerCompraPromoveParaAguardandoCompra(t *testing.T) {
	uc, s := newUseCase()
	caID, addID, remID := seedCA(t, uc)

	_, err := uc.UpdateItemStockStatus(context.Background(), addID, entity.StockStatusPurchaseNeeded)
	require.NoError(t, err)
	_, err = uc.UpdateItemStockStatus(context.Background(), remID, entity.StockStatusInStock)
	require.NoError(t, err)

	assert.Equal(t, entity.CAStatusAwaitingPurchase, s.cas[caID].Status)
}

// Depois da promoção o C.A. não regride nem re-promove: novas atualizações de
// item só mexem no próprio item.
func TestUpdateStockStatus_StatusDoCANaoRegride(t *testing.T) {
	uc, s := newUseCase()
	caID, addID, remID := seedCA(t, uc)

	_, err := uc.UpdateItemStockStatus(context.Background(), addID, entity.StockStatusPurchaseNeeded)
	require.NoError(t, err)
	_, err = uc.UpdateItemStockStatus(context.Background(), remID, entity.StockStatusInStock)
	require.NoError(t, err)
	require.Equal(t, entity.CAStatusAwaitingPurchase, s.cas[caID].Status)

	out, err := uc.UpdateItemStockStatus(context.Background(), addID, entity.StockStatusInStock)
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusInStock, out.StockStatus)
	assert.Equal(t, entity.CAStatusAwaitingPurchase, s.cas[caID].Status,
		"a agregação só age enquanto o C.A. está em análise")
}

func TestUpdateStockStatus_EnumDesconhecido(t *testing.T) {
	uc, _ := newUseCase()
	_, addID, _ := seedCA(t, uc)

	_, err := uc.UpdateItemStockStatus(context.Background(), addID, "EM_ESTOQUE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStockStatus_DefaultNaoEDestino(t *testing.T) {
	uc, _ := newUseCase()
	_, addID, _ := seedCA(t, uc)

	_, err := uc.UpdateItemStockStatus(context.Background(), addID, entity.StockStatusPendingVerification)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStockStatus_ItemInexistente(t *testing.T) {
	uc, _ := newUseCase()
	seedCA(t, uc)

	_, err := uc.UpdateItemStockStatus(context.Background(), uuid.NewString(), entity.StockStatusInStock)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_RegistraSemMudarOCA(t *testing.T) {
	uc, s := newUseCase()
	caID, _, _ := seedCA(t, uc)
	statusAntes := s.cas[caID].Status

	out, err := uc.RecordMovement(context.Background(), dto.CreateMovementRequest{
		CAID:             caID,
		ItemDescription:  "Disjuntor 3P 40A",
		QuantityMoved:    2,
		MovementType:     entity.MovementTypeIntoWarehouse,
		DestinationStock: "Almoxarifado central",
		ExecutedBy:       "Marcos",
	})
	require.NoError(t, err)
	assert.Equal(t, caID, out.CAID)
	assert.False(t, out.ExecutionDate.IsZero())
	assert.Equal(t, statusAntes, s.cas[caID].Status, "movimento não mexe no status do C.A.")
	assert.Len(t, s.movs, 1)
}

func TestRecordMovement_TipoDesconhecido(t *testing.T) {
	uc, _ := newUseCase()
	caID, _, _ := seedCA(t, uc)

	_, err := uc.RecordMovement(context.Background(), dto.CreateMovementRequest{
		CAID:            caID,
		ItemDescription: "Disjuntor 3P 40A",
		QuantityMoved:   2,
		MovementType:    "TRANSFER",
		ExecutedBy:      "Marcos",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_CAInexistente(t *testing.T) {
	uc, s := newUseCase()

	_, err := uc.RecordMovement(context.Background(), dto.CreateMovementRequest{
		CAID:            uuid.NewString(),
		ItemDescription: "Cabo 10mm",
		QuantityMoved:   5,
		MovementType:    entity.MovementTypeOutOfSite,
		ExecutedBy:      "Marcos",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.movs, "nenhum movimento gravado quando o C.A. não existe")
}
