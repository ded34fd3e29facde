package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	// HeaderWebhookSecret carries the shared secret of the payment collaborator.
	HeaderWebhookSecret = "X-Webhook-Secret"

	// Context keys set by the auth middleware
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyShopID   = "shop_id"

	// SystemActorID marks audit entries written by the engine itself.
	SystemActorID = "system"
)
