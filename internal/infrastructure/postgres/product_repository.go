package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, brand, category, price, description, sku, images, videos,
	in_stock, ratings, dimensions, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Brand, product.Category, product.Price, product.Description,
		product.SKU, stringsOrEmpty(product.Images), stringsOrEmpty(product.Videos),
		product.InStock, product.Ratings, product.Dimensions, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByName obtiene un producto por nombre.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by name", `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// List lista todos los productos, los más recientes primero.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente. ErrNotFound si no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, brand = $3, category = $4, price = $5, description = $6, sku = $7,
			images = $8, videos = $9, in_stock = $10, ratings = $11, dimensions = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Brand, product.Category, product.Price, product.Description,
		product.SKU, stringsOrEmpty(product.Images), stringsOrEmpty(product.Videos),
		product.InStock, product.Ratings, product.Dimensions, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID. Devuelve false si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CountByCategory cuenta productos agrupados por nombre de categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// RenameCategory mueve todos los productos de la categoría from a to.
func (r *ProductRepo) RenameCategory(ctx context.Context, from, to string) (int, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET category = $2, updated_at = now() WHERE category = $1`, from, to)
	if err != nil {
		return 0, fmt.Errorf("rename product category: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &p.Description, &p.SKU, &p.Images, &p.Videos,
		&p.InStock, &p.Ratings, &p.Dimensions, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
