package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/constants"
	"github.com/rafflehub/rafflehub/internal/shared/errors"
)

// GetActor rebuilds the actor stored by the auth middleware.
func GetActor(c *gin.Context) (authorization.Actor, error) {
	userID := c.GetString(constants.ContextKeyUserID)
	role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
	if userID == "" || !role.IsValid() {
		return authorization.Actor{}, errors.NewUnauthorizedError("authentication required")
	}
	return authorization.Actor{
		ID:     userID,
		Role:   role,
		ShopID: c.GetUint(constants.ContextKeyShopID),
	}, nil
}

// SetActor stores actor in the request context.
func SetActor(c *gin.Context, actor authorization.Actor) {
	c.Set(constants.ContextKeyUserID, actor.ID)
	c.Set(constants.ContextKeyUserRole, actor.Role.String())
	if actor.ShopID != 0 {
		c.Set(constants.ContextKeyShopID, actor.ShopID)
	}
}
