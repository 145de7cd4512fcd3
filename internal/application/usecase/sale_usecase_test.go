package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

var (
	testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day     = 24 * time.Hour
)

func at(t time.Time) *time.Time { return &t }

func pct(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// pendingCategory oferta programada para mañana con su entrada Pending.
func pendingCategory() *entity.Category {
	start, end := testNow.Add(day), testNow.Add(3*day)
	return &entity.Category{
		ID:             "cat-1",
		Name:           "Bebidas",
		Servings:       []string{"vaso"},
		ServingsCount:  1,
		SaleStatus:     entity.SalePending,
		SaleStartDate:  at(start),
		SaleEndDate:    at(end),
		SalePercentage: decimal.NewFromInt(20),
		SaleHistory: []entity.SaleHistoryEntry{{
			StartDate:  at(start),
			EndDate:    at(end),
			Percentage: decimal.NewFromInt(20),
			Status:     entity.SalePending,
			UpdatedAt:  testNow.Add(-time.Hour),
		}},
		Version: 3,
	}
}

func inactiveCategory() *entity.Category {
	return &entity.Category{
		ID:          "cat-2",
		Name:        "Postres",
		SaleStatus:  entity.SaleInactive,
		SaleHistory: []entity.SaleHistoryEntry{},
		Version:     1,
	}
}

func newSaleUseCase(repo *memCategories, rec ports.SaleRecorder) *usecase.SaleUseCase {
	return usecase.NewSaleUseCase(repo, newMemProducts(), fixedClock{now: testNow}, rec, nil, time.Second, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_StartNowActivaPendiente(t *testing.T) {
	repo := newMemCategories(pendingCategory())
	rec := &spyRecorder{}
	uc := newSaleUseCase(repo, rec)

	resp, err := uc.UpdateSale(context.Background(), "cat-1", dto.UpdateSaleRequest{Action: "startNow"})
	require.NoError(t, err)

	assert.Equal(t, "Active", resp.SaleStatus)
	assert.True(t, resp.SaleStartDate.Equal(testNow))
	assert.True(t, resp.SaleEndDate.Equal(testNow.Add(3*day)))
	assert.True(t, resp.SalePercentage.Equal(decimal.NewFromInt(20)))
	require.Len(t, resp.SaleHistory, 1)
	assert.Equal(t, "Active", resp.SaleHistory[0].Status)
	assert.Equal(t, 4, resp.Version)

	stored := repo.stored("cat-1")
	assert.Equal(t, entity.SaleActive, stored.SaleStatus)
	assert.Equal(t, 4, stored.Version)
	assert.True(t, stored.UpdatedAt.Equal(testNow))
	assert.Equal(t, []recordedOp{{branch: "startNow", outcome: ports.OutcomeOK}}, rec.ops)
}

func TestUpdateSale_RamaPorDefectoProgramaOferta(t *testing.T) {
	repo := newMemCategories(inactiveCategory())
	uc := newSaleUseCase(repo, nil)

	start := testNow.Add(2 * day)
	end := testNow.Add(5 * day)
	resp, err := uc.UpdateSale(context.Background(), "cat-2", dto.UpdateSaleRequest{
		SaleStartDate:  dto.OptionalDate{Time: at(start)},
		SaleEndDate:    dto.OptionalDate{Time: at(end)},
		SalePercentage: pct(15),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.SaleStatus)
	require.Len(t, resp.SaleHistory, 1)
	assert.Equal(t, "Pending", resp.SaleHistory[0].Status)
}

func TestUpdateSale_FechasSeNormalizanAMicrosegundos(t *testing.T) {
	repo := newMemCategories(inactiveCategory())
	uc := newSaleUseCase(repo, nil)

	start := testNow.Add(-time.Hour).Add(123 * time.Nanosecond)
	end := testNow.Add(day).Add(999 * time.Nanosecond)
	_, err := uc.UpdateSale(context.Background(), "cat-2", dto.UpdateSaleRequest{
		SaleStartDate:  dto.OptionalDate{Time: at(start)},
		SaleEndDate:    dto.OptionalDate{Time: at(end)},
		SalePercentage: pct(10),
	})
	require.NoError(t, err)

	stored := repo.stored("cat-2")
	require.NotNil(t, stored.SaleStartDate)
	assert.Equal(t, 0, stored.SaleStartDate.Nanosecond()%1000)
	assert.Equal(t, 0, stored.SaleEndDate.Nanosecond()%1000)
}

func TestUpdateSale_IDVacioEsInvalido(t *testing.T) {
	repo := newMemCategories()
	rec := &spyRecorder{}
	uc := newSaleUseCase(repo, rec)

	_, err := uc.UpdateSale(context.Background(), "", dto.UpdateSaleRequest{Action: "cancelSale"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, ports.OutcomeInvalid, rec.ops[0].outcome)
}

func TestUpdateSale_CategoriaInexistente(t *testing.T) {
	repo := newMemCategories()
	rec := &spyRecorder{}
	uc := newSaleUseCase(repo, rec)

	_, err := uc.UpdateSale(context.Background(), "no-existe", dto.UpdateSaleRequest{Action: "cancelSale"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []recordedOp{{branch: "cancelSale", outcome: ports.OutcomeNotFound}}, rec.ops)
}

func TestUpdateSale_PorcentajeFueraDeRangoNoGuarda(t *testing.T) {
	repo := newMemCategories(pendingCategory())
	uc := newSaleUseCase(repo, nil)

	_, err := uc.UpdateSale(context.Background(), "cat-1", dto.UpdateSaleRequest{
		Action:         "updateSale",
		SalePercentage: pct(150),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, 0, repo.saves)
	assert.Equal(t, 3, repo.stored("cat-1").Version)
}

func TestUpdateSale_EndNowSinOfertaActiva(t *testing.T) {
	repo := newMemCategories(inactiveCategory())
	uc := newSaleUseCase(repo, nil)

	_, err := uc.UpdateSale(context.Background(), "cat-2", dto.UpdateSaleRequest{Action: "endNow"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, 0, repo.saves)
}

func TestUpdateSale_FalloAlLeerEsPersistencia(t *testing.T) {
	repo := newMemCategories(pendingCategory())
	repo.getErr = context.DeadlineExceeded
	uc := newSaleUseCase(repo, nil)

	_, err := uc.UpdateSale(context.Background(), "cat-1", dto.UpdateSaleRequest{Action: "cancelSale"})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUpdateSale_FalloAlGuardarEsPersistencia(t *testing.T) {
	repo := newMemCategories(pendingCategory())
	repo.saveErr = errors.New("conexión rechazada")
	rec := &spyRecorder{}
	uc := newSaleUseCase(repo, rec)

	_, err := uc.UpdateSale(context.Background(), "cat-1", dto.UpdateSaleRequest{Action: "cancelSale"})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, ports.OutcomeError, rec.ops[0].outcome)

	stored := repo.stored("cat-1")
	assert.Equal(t, entity.SalePending, stored.SaleStatus, "el documento guardado no cambia")
}

func TestUpdateSale_ConflictoDeVersion(t *testing.T) {
	repo := newMemCategories(pendingCategory())
	repo.saveErr = domain.ErrConflict
	rec := &spyRecorder{}
	uc := newSaleUseCase(repo, rec)

	_, err := uc.UpdateSale(context.Background(), "cat-1", dto.UpdateSaleRequest{Action: "startNow"})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, ports.OutcomeConflict, rec.ops[0].outcome)
}

func TestUpdateSale_SecuenciaCompleta(t *testing.T) {
	repo := newMemCategories(inactiveCategory())
	uc := newSaleUseCase(repo, nil)
	ctx := context.Background()

	_, err := uc.UpdateSale(ctx, "cat-2", dto.UpdateSaleRequest{
		SaleStartDate:  dto.OptionalDate{Time: at(testNow.Add(day))},
		SaleEndDate:    dto.OptionalDate{Time: at(testNow.Add(4 * day))},
		SalePercentage: pct(30),
	})
	require.NoError(t, err)

	_, err = uc.UpdateSale(ctx, "cat-2", dto.UpdateSaleRequest{Action: "startNow"})
	require.NoError(t, err)

	resp, err := uc.UpdateSale(ctx, "cat-2", dto.UpdateSaleRequest{Action: "endNow"})
	require.NoError(t, err)

	assert.Equal(t, "Inactive", resp.SaleStatus)
	assert.Nil(t, resp.SaleStartDate)
	assert.Nil(t, resp.SaleEndDate)
	assert.True(t, resp.SalePercentage.IsZero())
	require.Len(t, resp.SaleHistory, 1)
	assert.Equal(t, "Concluded", resp.SaleHistory[0].Status)
	assert.True(t, resp.SaleHistory[0].EndDate.Equal(testNow))
	assert.Equal(t, 4, repo.stored("cat-2").Version)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SaleReport
// ──────────────────────────────────────────────────────────────────────────────

type stubReports struct {
	got *entity.Category
}

func (s *stubReports) GenerateSaleHistory(_ context.Context, c *entity.Category, _ time.Time) ([]byte, error) {
	s.got = c
	return []byte("%PDF-1.4"), nil
}

func TestSaleReport_GeneraPDF(t *testing.T) {
	repo := newMemCategories(pendingCategory())
	reports := &stubReports{}
	uc := usecase.NewSaleUseCase(repo, nil, fixedClock{now: testNow}, nil, reports, time.Second, nil)

	pdf, err := uc.SaleReport(context.Background(), "cat-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	require.NotNil(t, reports.got)
	assert.Equal(t, "Bebidas", reports.got.Name)
}

func TestSaleReport_CategoriaInexistente(t *testing.T) {
	uc := usecase.NewSaleUseCase(newMemCategories(), nil, fixedClock{now: testNow}, nil, &stubReports{}, time.Second, nil)

	_, err := uc.SaleReport(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateSale_AccionDesconocidaSeEtiquetaComoCalendario(t *testing.T) {
	repo := newMemCategories(inactiveCategory())
	rec := &spyRecorder{}
	uc := newSaleUseCase(repo, rec)

	_, err := uc.UpdateSale(context.Background(), "cat-2", dto.UpdateSaleRequest{Action: "x123"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, []recordedOp{{branch: "schedule", outcome: ports.OutcomeInvalid}}, rec.ops)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de timeout contra el store
// ──────────────────────────────────────────────────────────────────────────────

// slowCategories bloquea la operación elegida hasta que vence el contexto.
type slowCategories struct {
	*memCategories
	slowGet, slowSave bool
}

func (s *slowCategories) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if s.slowGet {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.memCategories.GetByID(ctx, id)
}

func (s *slowCategories) Save(ctx context.Context, c *entity.Category) error {
	if s.slowSave {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.memCategories.Save(ctx, c)
}

func TestUpdateSale_StoreLentoVenceElTimeout(t *testing.T) {
	cases := map[string]*slowCategories{
		"lectura":  {memCategories: newMemCategories(pendingCategory()), slowGet: true},
		"guardado": {memCategories: newMemCategories(pendingCategory()), slowSave: true},
	}
	for name, repo := range cases {
		t.Run(name, func(t *testing.T) {
			uc := usecase.NewSaleUseCase(repo, newMemProducts(), fixedClock{now: testNow}, nil, nil, 20*time.Millisecond, nil)

			_, err := uc.UpdateSale(context.Background(), "cat-1", dto.UpdateSaleRequest{Action: "cancelSale"})
			assert.ErrorIs(t, err, domain.ErrPersistence)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Equal(t, entity.SalePending, repo.stored("cat-1").SaleStatus)
		})
	}
}
