package shared

// Asynq task type names.
const (
	TypeSendOrderWhatsApp = "order:send_whatsapp"
	TypeCleanupCarts      = "cart:cleanup_expired"
)
