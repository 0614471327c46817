package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/hotelauthsvc/domain"
)

// Context keys populated by the auth middleware.
const (
	CtxAccountID = "account_id"
	CtxRole      = "account_role"
	CtxScope     = "token_scope"
	CtxSessionID = "session_id"
)

// AuthMW wraps the token service for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT returns the bearer-token middleware. Every failure mode (missing
// header, malformed scheme, bad signature, expired, wrong issuer/audience)
// produces the same response body so the outcome cannot be used as an
// oracle. Verification is local; no store is consulted.
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			unauthorized(c)
			return
		}

		claims, err := mw.tokenSvc.VerifyAccessToken(tokenParts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(CtxAccountID, fmt.Sprintf("%d", claims.Subject))
		c.Set(CtxRole, claims.Role)
		c.Set(CtxScope, claims.Scope)
		if claims.SessionID != "" {
			c.Set(CtxSessionID, claims.SessionID)
		}

		c.Next()
	}
}

// RequireScope gates a route group on the token scope, so a corporate token
// cannot reach staff routes and vice versa.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, ok := c.Get(CtxScope); !ok || got.(string) != scope {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	c.Abort()
}
