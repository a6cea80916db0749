package middleware

import (
	"context"
	"net/http"
	"strings"

	"travel_booking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	AuthUserKey     = "authUser"
	AuthRoleKey     = "authRole"
	AuthUsernameKey = "authUsername"
)

type identityKey struct{}

// IdentityFromContext returns the caller identity stored by JWTAuthMiddleware.
func IdentityFromContext(ctx context.Context) (utils.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(utils.Identity)
	return id, ok
}

// JWTAuthMiddleware rejects requests without a valid bearer token. A missing
// token is 401; a token that fails validation is 403.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("rejected bearer token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Invalid token"})
			return
		}

		identity := claims.Identity()
		c.Set(AuthUserKey, identity.UserID)
		c.Set(AuthRoleKey, identity.Role)
		c.Set(AuthUsernameKey, identity.Username)

		ctx := context.WithValue(c.Request.Context(), identityKey{}, identity)
		logger := zerolog.Ctx(ctx).With().Str("user_id", identity.UserID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(ctx))

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
