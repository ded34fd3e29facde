// Package authorization defines the roles and actor identity passed into every command.
package authorization

import "fmt"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleShop  UserRole = "shop"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleShop, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole matches s exactly against the known roles.
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	ID   string
	Role UserRole
	// ShopID is set for shop actors only.
	ShopID uint
}

// SystemActor is used for transitions the engine performs on its own.
func SystemActor() Actor {
	return Actor{ID: "system", Role: RoleAdmin}
}

func (a Actor) IsSystem() bool {
	return a.ID == "system"
}

// OwnsShop reports whether the actor may act on behalf of shopID.
func (a Actor) OwnsShop(shopID uint) bool {
	return a.Role == RoleShop && a.ShopID != 0 && a.ShopID == shopID
}
