package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"aguacates-backend/internal/domains/order/repository"
	"aguacates-backend/internal/domains/order/service"
	"aguacates-backend/internal/infrastructure/whatsapp"
	"aguacates-backend/pkg/logger"
)

// SendWhatsAppHandler resolves the order's wa.me deep link and stores it
// on the order. Actual message delivery happens when the store operator
// opens the link; there is no WhatsApp Business API involved.
type SendWhatsAppHandler struct {
	repo    repository.RepositoryInterface
	builder *whatsapp.Builder
}

func NewSendWhatsAppHandler(repo repository.RepositoryInterface, builder *whatsapp.Builder) *SendWhatsAppHandler {
	return &SendWhatsAppHandler{
		repo:    repo,
		builder: builder,
	}
}

func (h *SendWhatsAppHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload service.SendWhatsAppPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal whatsapp payload", err)
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	order, err := h.repo.GetByID(ctx, payload.OrderID)
	if err != nil {
		logger.Error("Failed to load order for whatsapp dispatch", err)
		return err
	}

	link := h.builder.OrderLink(order)
	if err := h.repo.SetWhatsAppLink(ctx, order.OrderNumber, link); err != nil {
		logger.Error("Failed to store whatsapp link", err)
		return err
	}

	log.Info().
		Str("order_number", order.OrderNumber).
		Str("whatsapp_link", link).
		Msg("Order WhatsApp link ready")

	return nil
}
