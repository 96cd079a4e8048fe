package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aguacates-backend/internal/domains/order/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (
			id, order_number, session_id,
			customer_name, customer_phone, customer_email, address, location,
			payment_method, notes,
			subtotal, discount, shipping, total, coupon_code,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`,
		order.ID, order.OrderNumber, order.SessionID,
		order.CustomerName, order.CustomerPhone, order.CustomerEmail,
		order.Address, order.Location, order.PaymentMethod, order.Notes,
		order.Subtotal, order.Discount, order.Shipping, order.Total, order.CouponCode,
		order.Status,
	); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, variant_id,
				product_name, variant_label, unit, quantity, unit_price, subtotal
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			item.ID, order.ID, item.ProductID, item.VariantID,
			item.ProductName, item.VariantLabel, item.Unit,
			item.Quantity, item.UnitPrice, item.Subtotal,
		); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

// NextSequenceForDate implements RepositoryInterface.NextSequenceForDate
//
// The per-day counter lives in its own table so concurrent checkouts get
// distinct numbers without scanning the orders table.
func (r *postgresRepository) NextSequenceForDate(ctx context.Context, tx pgx.Tx, date time.Time) (int, error) {
	var seq int
	err := tx.QueryRow(ctx, `
		INSERT INTO order_sequences (day, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = order_sequences.last_seq + 1
		RETURNING last_seq
	`, date.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve order sequence: %w", err)
	}
	return seq, nil
}

// GetByNumber implements RepositoryInterface.GetByNumber
func (r *postgresRepository) GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return r.getOne(ctx, "order_number = $1", orderNumber)
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT
			id, order_number, session_id,
			customer_name, customer_phone, customer_email, address, location,
			payment_method, notes,
			subtotal, discount, shipping, total, coupon_code,
			status, whatsapp_link, created_at, updated_at
		FROM orders
		WHERE %s
	`, where)

	var o model.Order
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&o.ID,
		&o.OrderNumber,
		&o.SessionID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.Address,
		&o.Location,
		&o.PaymentMethod,
		&o.Notes,
		&o.Subtotal,
		&o.Discount,
		&o.Shipping,
		&o.Total,
		&o.CouponCode,
		&o.Status,
		&o.WhatsAppLink,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *postgresRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			id, order_id, product_id, variant_id,
			product_name, variant_label, unit, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.VariantID,
			&item.ProductName,
			&item.VariantLabel,
			&item.Unit,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return items, nil
}

// SetWhatsAppLink implements RepositoryInterface.SetWhatsAppLink
func (r *postgresRepository) SetWhatsAppLink(ctx context.Context, orderNumber, link string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET whatsapp_link = $2, updated_at = NOW()
		WHERE order_number = $1
	`, orderNumber, link)
	if err != nil {
		return fmt.Errorf("failed to set whatsapp link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
