package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ImageOrderRepository = (*ImageOrderRepo)(nil)

// ImageOrderRepo guarda cada orden de imágenes como un registro nuevo; el más reciente es el vigente.
type ImageOrderRepo struct {
	q Querier
}

// NewImageOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewImageOrderRepository(q Querier) *ImageOrderRepo {
	return &ImageOrderRepo{q: q}
}

// Latest devuelve el último orden guardado o (nil, nil).
func (r *ImageOrderRepo) Latest(ctx context.Context) (*entity.ImageOrder, error) {
	query := `SELECT id, urls, updated_at FROM image_orders ORDER BY updated_at DESC LIMIT 1`
	var o entity.ImageOrder
	if err := r.q.QueryRow(ctx, query).Scan(&o.ID, &o.URLs, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get image order: %w", err)
	}
	return &o, nil
}

// Save inserta un nuevo orden.
func (r *ImageOrderRepo) Save(ctx context.Context, order *entity.ImageOrder) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO image_orders (id, urls, updated_at) VALUES ($1, $2, $3)`,
		order.ID, stringsOrEmpty(order.URLs), order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert image order: %w", err)
	}
	return nil
}
