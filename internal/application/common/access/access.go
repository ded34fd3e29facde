// Package access checks actor permissions for use cases.
package access

import (
	"fmt"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
)

// Authorizer answers whether a role may perform action on resource.
type Authorizer interface {
	Enforce(role string, resource string, action string) (bool, error)
}

// Check returns raffle.ErrUnauthorized unless the actor's role is allowed.
// The system actor is always allowed.
func Check(authz Authorizer, actor authorization.Actor, resource, action string) error {
	if actor.IsSystem() {
		return nil
	}
	if actor.ID == "" || !actor.Role.IsValid() {
		return fmt.Errorf("%w: anonymous actor", raffle.ErrUnauthorized)
	}
	allowed, err := authz.Enforce(actor.Role.String(), resource, action)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: role %s cannot %s %s", raffle.ErrUnauthorized, actor.Role, action, resource)
	}
	return nil
}

// CheckShop additionally requires shop actors to own shopID. Admins pass.
func CheckShop(actor authorization.Actor, shopID uint) error {
	if actor.IsSystem() || actor.Role.IsAdmin() {
		return nil
	}
	if !actor.OwnsShop(shopID) {
		return fmt.Errorf("%w: actor %s does not own shop %d", raffle.ErrUnauthorized, actor.ID, shopID)
	}
	return nil
}
