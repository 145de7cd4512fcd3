package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetBy* devuelven (nil, nil) cuando no existe el documento.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// Save reemplaza el documento completo (cabecera + historial) solo si
	// category.Version coincide con la versión guardada; si no, ErrConflict.
	// En éxito incrementa category.Version.
	Save(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) (bool, error)
}
