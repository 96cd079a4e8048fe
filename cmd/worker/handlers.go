package main

import (
	"github.com/hibiken/asynq"

	cartJob "aguacates-backend/internal/domains/cart/job"
	orderJob "aguacates-backend/internal/domains/order/job"
	infraCache "aguacates-backend/internal/infrastructure/cache"
	"aguacates-backend/internal/shared"
	"aguacates-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	sendWhatsApp *orderJob.SendWhatsAppHandler
	cleanupCarts *cartJob.CleanupCartsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	scanner := c.Cache.(*infraCache.RedisCache)

	return &HandlerRegistry{
		sendWhatsApp: orderJob.NewSendWhatsAppHandler(c.OrderRepo, c.WhatsApp),
		cleanupCarts: cartJob.NewCleanupCartsHandler(scanner, c.Cache),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendOrderWhatsApp, h.sendWhatsApp.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupCarts, h.cleanupCarts.ProcessTask)
}
