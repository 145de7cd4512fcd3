package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías. La oferta se maneja en SaleUseCase.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	tx       ports.CatalogTxRunner
	clock    ports.Clock
	timeout  time.Duration
}

// NewCategoryUseCase construye el caso de uso. Sin tx, el renombrado de productos
// se hace fuera de transacción.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository, tx ports.CatalogTxRunner, clock ports.Clock, timeout time.Duration) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products, tx: tx, clock: clock, timeout: timeout}
}

// Create crea una categoría sin oferta (Inactive, historial vacío), deshabilitada y sin destacar.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := normalizeName(in.Name)
	if name == "" || in.Servings == nil {
		return nil, fmt.Errorf("%w: name y servings son requeridos", domain.ErrInvalidRequest)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.clock.Now()
	servings := normalizeServings(in.Servings)
	category := &entity.Category{
		ID:            uuid.New().String(),
		Name:          name,
		Servings:      servings,
		ServingsCount: len(servings),
		SaleHistory:   []entity.SaleHistoryEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	category.ClearSale()
	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, 0), nil
}

// List devuelve todas las categorías con su conteo de productos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.products.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c, counts[c.Name]))
	}
	return items, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	category, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := uc.products.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, counts[category.Name]), nil
}

// Update actualiza nombre, servings y banderas. Verifica que el nuevo nombre no esté tomado.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	category, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	oldName := category.Name
	if in.Name != nil {
		name := normalizeName(*in.Name)
		if name != "" && name != category.Name {
			taken, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if taken != nil {
				return nil, domain.ErrDuplicate
			}
			category.Name = name
		}
	}
	if in.Servings != nil {
		category.Servings = normalizeServings(in.Servings)
		category.ServingsCount = len(category.Servings)
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.Highlighted != nil {
		category.Highlighted = *in.Highlighted
	}
	category.UpdatedAt = uc.clock.Now()
	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if err := uc.save(ctx, category, oldName); err != nil {
		return nil, err
	}
	counts, err := uc.products.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, counts[category.Name]), nil
}

// Delete elimina una categoría. ErrNotFound si no existe.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id requerido", domain.ErrInvalidRequest)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// save guarda la categoría y, si cambió de nombre, mueve sus productos en la misma transacción.
func (uc *CategoryUseCase) save(ctx context.Context, category *entity.Category, oldName string) error {
	if category.Name == oldName {
		return uc.repo.Save(ctx, category)
	}
	write := func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		if err := categories.Save(ctx, category); err != nil {
			return err
		}
		_, err := products.RenameCategory(ctx, oldName, category.Name)
		return err
	}
	if uc.tx == nil {
		return write(uc.repo, uc.products)
	}
	return uc.tx.RunCatalog(ctx, write)
}

func (uc *CategoryUseCase) find(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidRequest)
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category, productCount int) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	history := make([]dto.SaleHistoryEntryResponse, 0, len(c.SaleHistory))
	for _, e := range c.SaleHistory {
		history = append(history, dto.SaleHistoryEntryResponse{
			StartDate:  e.StartDate,
			EndDate:    e.EndDate,
			Percentage: e.Percentage,
			Status:     string(e.Status),
			UpdatedAt:  e.UpdatedAt,
		})
	}
	servings := c.Servings
	if servings == nil {
		servings = []string{}
	}
	return &dto.CategoryResponse{
		ID:             c.ID,
		Name:           c.Name,
		IsActive:       c.IsActive,
		Highlighted:    c.Highlighted,
		Servings:       servings,
		ServingsCount:  c.ServingsCount,
		ProductCount:   productCount,
		SaleStatus:     string(c.SaleStatus),
		SaleStartDate:  c.SaleStartDate,
		SaleEndDate:    c.SaleEndDate,
		SalePercentage: c.SalePercentage,
		SaleHistory:    history,
		Version:        c.Version,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
