package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/internal/domain/sale"
)

// ProductUseCase casos de uso CRUD para productos. El precio de oferta se deriva de la categoría.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	clock      ports.Clock
	timeout    time.Duration
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, clock ports.Clock, timeout time.Duration) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, clock: clock, timeout: timeout}
}

// Create crea un nuevo producto. inStock, ratings y dimensions toman su valor por defecto si se omiten.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := normalizeName(in.Name)
	if name == "" || in.Brand == "" || in.Category == "" || in.Price == nil || in.Description == "" || in.SKU == "" {
		return nil, fmt.Errorf("%w: name, brand, category, price, description y sku son requeridos", domain.ErrInvalidRequest)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price negativo", domain.ErrInvalidRequest)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := uc.checkUnique(ctx, "", name, in.SKU); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Brand:       in.Brand,
		Category:    normalizeName(in.Category),
		Price:       *in.Price,
		Description: in.Description,
		SKU:         in.SKU,
		Images:      orEmpty(in.Images),
		Videos:      orEmpty(in.Videos),
		Ratings:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.Ratings != nil {
		product.Ratings = *in.Ratings
	}
	if in.Dimensions != nil {
		product.Dimensions = *in.Dimensions
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// GetByID obtiene un producto por ID con su precio de oferta vigente.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := uc.categories.GetByName(ctx, product.Category)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, uc.salePrice(product, category)), nil
}

// List lista todos los productos; los de categorías con oferta vigente traen salePrice.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, uc.salePrice(p, byName[p.Category])))
	}
	return items, nil
}

// Update actualiza un producto. Si cambia name o sku vuelve a verificar unicidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	name, sku := "", ""
	if in.Name != nil {
		if n := normalizeName(*in.Name); n != "" && n != product.Name {
			name = n
		}
	}
	if in.SKU != nil && *in.SKU != "" && *in.SKU != product.SKU {
		sku = *in.SKU
	}
	if err := uc.checkUnique(ctx, product.ID, name, sku); err != nil {
		return nil, err
	}
	if name != "" {
		product.Name = name
	}
	if sku != "" {
		product.SKU = sku
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Category != nil {
		product.Category = normalizeName(*in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price negativo", domain.ErrInvalidRequest)
		}
		product.Price = *in.Price
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	if in.Videos != nil {
		product.Videos = in.Videos
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.Ratings != nil {
		product.Ratings = *in.Ratings
	}
	if in.Dimensions != nil {
		product.Dimensions = *in.Dimensions
	}
	product.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// ToggleStatus invierte inStock.
func (uc *ProductUseCase) ToggleStatus(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	product.InStock = !product.InStock
	product.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// Delete elimina un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
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

func (uc *ProductUseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidRequest)
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// checkUnique verifica que name y sku (si no están vacíos) no pertenezcan a otro producto.
func (uc *ProductUseCase) checkUnique(ctx context.Context, selfID, name, sku string) error {
	if name != "" {
		p, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if p != nil && p.ID != selfID {
			return fmt.Errorf("%w: ya existe un producto con ese nombre", domain.ErrDuplicate)
		}
	}
	if sku != "" {
		p, err := uc.repo.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if p != nil && p.ID != selfID {
			return fmt.Errorf("%w: ya existe un producto con ese SKU", domain.ErrDuplicate)
		}
	}
	return nil
}

// salePrice devuelve price * (100 - pct) / 100 redondeado a 2 decimales cuando
// la ventana de oferta de la categoría contiene el instante actual.
func (uc *ProductUseCase) salePrice(p *entity.Product, c *entity.Category) *decimal.Decimal {
	if c == nil || c.SalePercentage.IsZero() {
		return nil
	}
	if sale.DeriveStatus(c.SaleStartDate, c.SaleEndDate, uc.clock.Now()) != entity.SaleActive {
		return nil
	}
	price := p.Price.Mul(hundred.Sub(c.SalePercentage)).Div(hundred).Round(2)
	return &price
}

var hundred = decimal.NewFromInt(100)

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toProductResponse(p *entity.Product, salePrice *decimal.Decimal) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price,
		SalePrice:   salePrice,
		Description: p.Description,
		SKU:         p.SKU,
		Images:      orEmpty(p.Images),
		Videos:      orEmpty(p.Videos),
		InStock:     p.InStock,
		Ratings:     p.Ratings,
		Dimensions:  p.Dimensions,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
