package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	// CountByCategory devuelve cuántos productos hay por nombre de categoría.
	CountByCategory(ctx context.Context) (map[string]int, error)
	// RenameCategory mueve los productos de la categoría from a to; devuelve cuántos cambió.
	RenameCategory(ctx context.Context, from, to string) (int, error)
}
