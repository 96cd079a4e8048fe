package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"

	cartservice "aguacates-backend/internal/domains/cart/service"
	couponservice "aguacates-backend/internal/domains/coupon/service"
	"aguacates-backend/internal/domains/order/model"
	"aguacates-backend/internal/domains/order/repository"
	"aguacates-backend/internal/shared"
	"aguacates-backend/pkg/logger"
)

// TxRunner runs a function inside a database transaction. Satisfied by
// database.PostgresDB.
type TxRunner interface {
	ExecuteInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// SendWhatsAppPayload is the task payload for order WhatsApp dispatch.
type SendWhatsAppPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}

type OrderService struct {
	db      TxRunner
	repo    repository.RepositoryInterface
	cart    cartservice.ServiceInterface
	coupons couponservice.ServiceInterface
	queue   *asynq.Client
	now     func() time.Time
}

func NewOrderService(
	db TxRunner,
	repo repository.RepositoryInterface,
	cart cartservice.ServiceInterface,
	coupons couponservice.ServiceInterface,
	queue *asynq.Client,
) *OrderService {
	return &OrderService{
		db:      db,
		repo:    repo,
		cart:    cart,
		coupons: coupons,
		queue:   queue,
		now:     time.Now,
	}
}

func (s *OrderService) Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.Order, error) {
	cart, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	totals := cart.Totals()
	now := s.now()

	order := &model.Order{
		ID:            uuid.New(),
		SessionID:     sessionID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: optional(req.CustomerEmail),
		Address:       req.Address,
		Location:      req.Location,
		PaymentMethod: optional(req.PaymentMethod),
		Notes:         optional(req.Notes),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Shipping:      totals.Shipping,
		Total:         totals.Total,
		Status:        model.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if cart.Coupon != nil {
		order.CouponCode = optional(cart.Coupon.Code)
	}

	for _, line := range cart.Items {
		item := model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Unit:        line.Product.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
			Subtotal:    line.Subtotal(),
		}
		if line.Variant != nil {
			variantID := line.Variant.ID
			item.VariantID = &variantID
			item.VariantLabel = optional(line.Variant.VariantValue)
		}
		order.Items = append(order.Items, item)
	}

	err = s.db.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		seq, err := s.repo.NextSequenceForDate(ctx, tx, now)
		if err != nil {
			return err
		}
		order.OrderNumber = fmt.Sprintf("TA-%s-%04d", now.Format("20060102"), seq)

		if err := s.repo.Create(ctx, tx, order); err != nil {
			return err
		}

		if cart.Coupon != nil && (totals.Discount.IsPositive() || cart.Coupon.FreeShipping) {
			email := ""
			if order.CustomerEmail != nil {
				email = *order.CustomerEmail
			}
			if err := s.coupons.Redeem(ctx, tx, cart.Coupon.Code, email, order.ID, totals.Discount); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueWhatsApp(ctx, order)

	// A failed cart clear leaves a stale cart behind but the order is
	// already placed; never fail checkout over it.
	if _, err := s.cart.ClearCart(ctx, sessionID); err != nil {
		logger.Error("Failed to clear cart after checkout", err)
	}

	return order, nil
}

func (s *OrderService) enqueueWhatsApp(ctx context.Context, order *model.Order) {
	if s.queue == nil {
		return
	}

	payload, err := json.Marshal(SendWhatsAppPayload{OrderID: order.ID})
	if err != nil {
		logger.Error("Failed to marshal whatsapp payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeSendOrderWhatsApp, payload)
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.Queue("high"), asynq.MaxRetry(3)); err != nil {
		logger.Error("Failed to enqueue whatsapp dispatch", err)
	}
}

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return s.repo.GetByNumber(ctx, orderNumber)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
