package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aguacates-backend/internal/domains/catalog/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const productColumns = `
	id, name, slug, description, price, discount_price, stock, unit,
	image_url, category, is_active, created_at, updated_at
`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.DiscountPrice,
		&p.Stock,
		&p.Unit,
		&p.ImageURL,
		&p.Category,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive implements RepositoryInterface.ListActive
func (r *postgresRepository) ListActive(ctx context.Context, category string, limit, offset int) ([]*model.Product, int, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true
		  AND ($1 = '' OR category = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, category, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM products
		WHERE is_active = true
		  AND ($1 = '' OR category = $1)
	`
	if err := r.pool.QueryRow(ctx, countQuery, category).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return products, total, nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// GetBySlug implements RepositoryInterface.GetBySlug
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	return p, nil
}

// ListVariants implements RepositoryInterface.ListVariants
func (r *postgresRepository) ListVariants(ctx context.Context, productID uuid.UUID) ([]*model.ProductVariant, error) {
	query := `
		SELECT id, product_id, variant_name, variant_value, price, stock, is_active
		FROM product_variants
		WHERE product_id = $1 AND is_active = true
		ORDER BY variant_value
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var variants []*model.ProductVariant
	for rows.Next() {
		var v model.ProductVariant
		if err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.VariantName,
			&v.VariantValue,
			&v.Price,
			&v.Stock,
			&v.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate variants: %w", err)
	}

	return variants, nil
}

// GetVariant implements RepositoryInterface.GetVariant
func (r *postgresRepository) GetVariant(ctx context.Context, variantID uuid.UUID) (*model.ProductVariant, error) {
	query := `
		SELECT id, product_id, variant_name, variant_value, price, stock, is_active
		FROM product_variants
		WHERE id = $1
	`

	var v model.ProductVariant
	err := r.pool.QueryRow(ctx, query, variantID).Scan(
		&v.ID,
		&v.ProductID,
		&v.VariantName,
		&v.VariantValue,
		&v.Price,
		&v.Stock,
		&v.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}

	return &v, nil
}
