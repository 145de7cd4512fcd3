package ports

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback de todo.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(categories repository.CategoryRepository, products repository.ProductRepository) error) error
}
