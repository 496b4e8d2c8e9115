package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/keeptrack-dev/keeptrack/internal/auth"
	"github.com/keeptrack-dev/keeptrack/internal/types"
)

// AuthenticatedUser is what the middleware stashes in the gin context. It is
// built from token claims only; handlers that need the full row fetch it
// themselves so a vanished user surfaces as 404 there, not 403 here.
type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// AuthMiddleware answers 401 for a missing or malformed Authorization header
// and 403 for a token that fails verification, without saying why it failed.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := auth.VerifyToken(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    claims.UserID,
			Email: claims.Email,
		})
		ctx.Next()
	}
}
