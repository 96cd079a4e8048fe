package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"aguacates-backend/internal/domains/order/model"
)

type RepositoryInterface interface {
	// Create inserts the order and its items inside the caller's checkout
	// transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// NextSequenceForDate reserves the next per-day order sequence number
	// inside the checkout transaction.
	NextSequenceForDate(ctx context.Context, tx pgx.Tx, date time.Time) (int, error)

	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	SetWhatsAppLink(ctx context.Context, orderNumber, link string) error
}
