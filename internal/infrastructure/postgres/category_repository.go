package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// El historial de ofertas vive en la columna JSONB sale_history del mismo registro,
// así cabecera e historial se escriben en una sola sentencia.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, is_active, highlighted, servings, servings_count,
	sale_status, sale_start_date, sale_end_date, sale_percentage, sale_history,
	version, created_at, updated_at`

// Create persiste una nueva categoría con version 1.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	history, err := json.Marshal(historyOrEmpty(c.SaleHistory))
	if err != nil {
		return fmt.Errorf("marshal sale_history: %w", err)
	}
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		c.ID, c.Name, c.IsActive, c.Highlighted, stringsOrEmpty(c.Servings), c.ServingsCount,
		string(c.SaleStatus), c.SaleStartDate, c.SaleEndDate, c.SalePercentage, history,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	c.Version = 1
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

// List lista todas las categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Save reemplaza el documento completo si la versión guardada coincide con c.Version.
// Cero filas afectadas: el documento cambió (o se borró) desde que se leyó.
func (r *CategoryRepo) Save(ctx context.Context, c *entity.Category) error {
	history, err := json.Marshal(historyOrEmpty(c.SaleHistory))
	if err != nil {
		return fmt.Errorf("marshal sale_history: %w", err)
	}
	query := `
		UPDATE categories SET
			name = $3, is_active = $4, highlighted = $5, servings = $6, servings_count = $7,
			sale_status = $8, sale_start_date = $9, sale_end_date = $10, sale_percentage = $11,
			sale_history = $12, updated_at = $13, version = version + 1
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Version,
		c.Name, c.IsActive, c.Highlighted, stringsOrEmpty(c.Servings), c.ServingsCount,
		string(c.SaleStatus), c.SaleStartDate, c.SaleEndDate, c.SalePercentage,
		history, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	c.Version++
	return nil
}

// Delete elimina una categoría por ID. Devuelve false si no existía.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		c       entity.Category
		status  string
		history []byte
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.IsActive, &c.Highlighted, &c.Servings, &c.ServingsCount,
		&status, &c.SaleStartDate, &c.SaleEndDate, &c.SalePercentage, &history,
		&c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.SaleStatus = entity.SaleStatus(status)
	c.SaleHistory = []entity.SaleHistoryEntry{}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &c.SaleHistory); err != nil {
			return nil, fmt.Errorf("unmarshal sale_history: %w", err)
		}
	}
	c.SaleStartDate = utcPtr(c.SaleStartDate)
	c.SaleEndDate = utcPtr(c.SaleEndDate)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func historyOrEmpty(h []entity.SaleHistoryEntry) []entity.SaleHistoryEntry {
	if h == nil {
		return []entity.SaleHistoryEntry{}
	}
	return h
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
