package permission

import (
	"fmt"

	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// Resources and actions checked by the raffle use cases.
const (
	ResourceRaffle  = "raffle"
	ResourceProduct = "product"
	ResourceTicket  = "ticket"

	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionRead     = "read"
	ActionSubmit   = "submit"
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionPause    = "pause"
	ActionResume   = "resume"
	ActionCancel   = "cancel"
	ActionDraw     = "draw"
	ActionPurchase = "purchase"
)

func defaultPolicies() [][]string {
	return [][]string{
		// Admin moderates raffles and may force a draw
		{"admin", ResourceRaffle, ActionApprove},
		{"admin", ResourceRaffle, ActionReject},
		{"admin", ResourceRaffle, ActionCancel},
		{"admin", ResourceRaffle, ActionDraw},
		{"admin", ResourceRaffle, ActionRead},
		{"admin", ResourceProduct, ActionRead},
		{"admin", ResourceTicket, ActionRead},

		// Shop manages its own catalogue and raffles
		{"shop", ResourceProduct, ActionCreate},
		{"shop", ResourceProduct, ActionUpdate},
		{"shop", ResourceProduct, ActionRead},
		{"shop", ResourceRaffle, ActionCreate},
		{"shop", ResourceRaffle, ActionSubmit},
		{"shop", ResourceRaffle, ActionPause},
		{"shop", ResourceRaffle, ActionResume},
		{"shop", ResourceRaffle, ActionCancel},
		{"shop", ResourceRaffle, ActionRead},
		{"shop", ResourceTicket, ActionRead},

		// Users buy tickets
		{"user", ResourceRaffle, ActionRead},
		{"user", ResourceRaffle, ActionPurchase},
	}
}

// InitRafflePermissions installs the default role policies. Policies that
// already exist are left alone.
func InitRafflePermissions(e *Enforcer, log logger.Interface) error {
	for _, policy := range defaultPolicies() {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add raffle permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Infow("raffle permissions initialized successfully")
	return nil
}
