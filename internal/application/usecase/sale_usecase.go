package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/internal/domain/sale"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// SaleUseCase gestiona el ciclo de vida de la oferta de una categoría:
// carga el documento, aplica la acción y lo guarda completo con compare-and-swap.
type SaleUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	clock    ports.Clock
	recorder ports.SaleRecorder
	reports  ports.SaleReportGenerator
	timeout  time.Duration
	log      *logger.Logger
}

// NewSaleUseCase construye el caso de uso. recorder y reports pueden ser nil.
func NewSaleUseCase(
	repo repository.CategoryRepository,
	products repository.ProductRepository,
	clock ports.Clock,
	recorder ports.SaleRecorder,
	reports ports.SaleReportGenerator,
	timeout time.Duration,
	log *logger.Logger,
) *SaleUseCase {
	if recorder == nil {
		recorder = ports.NopSaleRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{
		repo:     repo,
		products: products,
		clock:    clock,
		recorder: recorder,
		reports:  reports,
		timeout:  timeout,
		log:      log.Component("sale"),
	}
}

// UpdateSale aplica la acción del request a la categoría id y devuelve el documento guardado.
// Errores: domain.ErrInvalidRequest, domain.ErrNotFound o domain.ErrPersistence
// (este último envuelve la causa, p. ej. domain.ErrConflict o context.DeadlineExceeded).
func (uc *SaleUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.CategoryResponse, error) {
	started := time.Now()
	branch := branchOf(sale.Action(in.Action))

	resp, t, err := uc.updateSale(ctx, id, in)
	if err == nil {
		branch = t.Branch
	}
	uc.recorder.RecordSaleOperation(branch, outcomeOf(err), time.Since(started))

	ev := uc.log.Info()
	if err != nil {
		ev = uc.log.Warn()
		if errors.Is(err, domain.ErrPersistence) {
			ev = uc.log.Error()
		}
		ev.Err(err)
	} else {
		ev.Str("from", string(t.From)).Str("to", string(t.To)).Bool("implicit", t.Implicit)
	}
	ev.Str("category_id", id).Str("action", branch).Dur("elapsed", time.Since(started)).Msg("update-sale")

	return resp, err
}

func (uc *SaleUseCase) updateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.CategoryResponse, sale.Transition, error) {
	if id == "" {
		return nil, sale.Transition{}, fmt.Errorf("%w: id requerido", domain.ErrInvalidRequest)
	}

	category, err := uc.load(ctx, id)
	if err != nil {
		return nil, sale.Transition{}, err
	}

	now := uc.clock.Now()
	cmd := sale.Command{
		Action:     sale.Action(in.Action),
		StartDate:  instant(in.SaleStartDate.Time),
		EndDate:    instant(in.SaleEndDate.Time),
		Percentage: in.SalePercentage,
	}
	t, err := sale.Apply(category, cmd, now)
	if err != nil {
		return nil, sale.Transition{}, err
	}
	category.UpdatedAt = now

	if err := category.Validate(); err != nil {
		return nil, sale.Transition{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if err := uc.save(ctx, category); err != nil {
		return nil, sale.Transition{}, err
	}

	count := 0
	if uc.products != nil {
		if counts, err := uc.countProducts(ctx); err == nil {
			count = counts[category.Name]
		}
	}
	return toCategoryResponse(category, count), t, nil
}

// SaleReport genera el PDF del historial de ofertas de la categoría id.
func (uc *SaleUseCase) SaleReport(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidRequest)
	}
	if uc.reports == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}
	category, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateSaleHistory(ctx, category, uc.clock.Now())
}

func (uc *SaleUseCase) load(ctx context.Context, id string) (*entity.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (uc *SaleUseCase) save(ctx context.Context, category *entity.Category) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := uc.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (uc *SaleUseCase) countProducts(ctx context.Context) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.products.CountByCategory(ctx)
}

// branchOf acota la etiqueta de métricas a las ramas conocidas; cualquier otra
// acción se ejecuta como calendario.
func branchOf(a sale.Action) string {
	switch a {
	case sale.ActionStartNow, sale.ActionCancel, sale.ActionEndNow, sale.ActionUpdate:
		return string(a)
	default:
		return sale.BranchSchedule
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return ports.OutcomeOK
	case errors.Is(err, domain.ErrInvalidRequest):
		return ports.OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return ports.OutcomeNotFound
	case errors.Is(err, domain.ErrConflict):
		return ports.OutcomeConflict
	default:
		return ports.OutcomeError
	}
}

func instant(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := entity.Instant(*t)
	return &v
}
