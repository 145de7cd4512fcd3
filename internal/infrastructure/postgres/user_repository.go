package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación del puerto AdminRepository sobre PostgreSQL.
type AdminRepo struct {
	pool *pgxpool.Pool
}

// NewAdminRepository construye el adaptador de persistencia para administradores.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

// Create persiste un nuevo administrador.
func (r *AdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, admin.ID, admin.Email, admin.PasswordHash, admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByEmail obtiene un administrador por email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`
	var a entity.Admin
	err := r.pool.QueryRow(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &a, nil
}
