package middleware

import (
	"net/http"
	"strings"

	"inkwell/internal/pkg"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// SessionStore is the read side of the session pin; the full interface lives
// with the user service.
type SessionStore interface {
	Token(userID uint64) (string, error)
	Extend(userID uint64) error
}

// CurrentUserID returns the authenticated principal, or 0 for anonymous.
func CurrentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

// bearerUserID validates the Authorization header against the token manager
// and the session pin. Returns 0 when anything is off.
func bearerUserID(c *gin.Context, tokens *pkg.TokenManager, sessions SessionStore) uint64 {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0
	}
	tokenStr := parts[1]

	claims, err := tokens.ParseAccess(tokenStr)
	if err != nil {
		return 0
	}

	// The pinned token must match: a later login elsewhere invalidates this one.
	pinned, err := sessions.Token(claims.UserID)
	if err != nil || pinned != tokenStr {
		return 0
	}

	_ = sessions.Extend(claims.UserID)
	return claims.UserID
}

// RequireAuth gates mutating routes. An anonymous or stale caller is not an
// error case: it gets a redirect to the login route, before any form handling.
func RequireAuth(tokens *pkg.TokenManager, sessions SessionStore, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := bearerUserID(c, tokens, sessions)
		if userID == 0 {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth extracts the principal when a valid token is presented but
// never blocks; listings and detail pages are public.
func OptionalAuth(tokens *pkg.TokenManager, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := bearerUserID(c, tokens, sessions); userID != 0 {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}
