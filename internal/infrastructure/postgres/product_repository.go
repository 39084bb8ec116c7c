package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.seller_id, COALESCE(u.name, ''), p.name, p.category, p.description,
	p.price, p.stock, p.status, p.created_at, p.updated_at`

var productList = listSQL{
	columns: productColumns,
	from:    "products p LEFT JOIN users u ON u.id = p.seller_id",
	alias:   "p",
	filters: map[string]string{
		"status":    "p.status",
		"category":  "p.category",
		"seller_id": "p.seller_id::text",
	},
	search: []string{"p.name", "p.category", "u.name"},
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SellerID, &p.SellerName, &p.Name, &p.Category, &p.Description,
		&p.Price, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, seller_id, name, category, description, price, stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SellerID, product.Name, product.Category, product.Description,
		product.Price, product.Stock, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("%w: vendedor %s no existe", domain.ErrInvalidInput, product.SellerID)
		}
		return storeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con el nombre del vendedor.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products p LEFT JOIN users u ON u.id = p.seller_id WHERE p.id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, q listing.Query) ([]*entity.Product, int, error) {
	rows, total, err := productList.run(ctx, r.q, "list products", q, nil)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Product, 0, q.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, storeErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *ProductRepo) UpdateStatus(ctx context.Context, id string, from, to entity.ProductStatus) error {
	return updateStatusIfUnchanged(ctx, r.q, "products", "producto", id, string(from), string(to))
}

// Delete borra el producto y sus reseñas; si figura en pedidos devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		if isFKViolation(err) {
			return false, fmt.Errorf("%w: el producto aparece en pedidos", domain.ErrConflict)
		}
		return false, storeErr("delete product", err)
	}
	return tag.RowsAffected() > 0, nil
}
