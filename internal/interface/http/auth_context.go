package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/kundali/internal/domain/auth"
)

const authClaimsKey = "auth_claims"

// authValidator is the slice of auth.Service the transport needs.
type authValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Claims, error)
}

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}
