package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the actor identity issued by the identity collaborator.
type Claims struct {
	UserID string                 `json:"user_id"`
	Role   authorization.UserRole `json:"role"`
	// ShopID is set for shop actors only.
	ShopID uint `json:"shop_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the actor passed to commands.
func (c *Claims) Actor() authorization.Actor {
	return authorization.Actor{ID: c.UserID, Role: c.Role, ShopID: c.ShopID}
}

type JWTService struct {
	secret           []byte
	issuer           string
	accessExpMinutes int
	clock            biztime.Clock
}

func NewJWTService(secret, issuer string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		issuer:           issuer,
		accessExpMinutes: accessExpMinutes,
		clock:            biztime.SystemClock(),
	}
}

// Generate signs an access token. Tokens are normally minted by the identity
// service; this is used by tooling and tests.
func (s *JWTService) Generate(actor authorization.Actor) (string, error) {
	if !actor.Role.IsValid() {
		return "", fmt.Errorf("invalid role %q", actor.Role)
	}
	now := s.clock.Now()
	claims := &Claims{
		UserID: actor.ID,
		Role:   actor.Role,
		ShopID: actor.ShopID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   actor.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: missing subject or role", ErrInvalidToken)
	}
	if claims.Role == authorization.RoleShop && claims.ShopID == 0 {
		return nil, fmt.Errorf("%w: shop token without shop_id", ErrInvalidToken)
	}
	return claims, nil
}
