package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// AdminRepository define el puerto de persistencia para administradores.
type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
}
