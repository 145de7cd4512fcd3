package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ImageOrderRepository persiste el orden de imágenes; Latest devuelve (nil, nil) si no hay documento.
type ImageOrderRepository interface {
	Latest(ctx context.Context) (*entity.ImageOrder, error)
	Save(ctx context.Context, order *entity.ImageOrder) error
}
