package middleware

import (
	"net/http"
	"strings"
	"time"

	"fixmate/utils"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys for the authenticated principal.
	CtxUserID = "userId"
	CtxRole   = "role"

	principalCacheTTL = 10 * time.Minute
)

// JWTAuthMiddleware validates the bearer token and sets the principal
// {userId, role} on the context. Validated principals are cached in redis
// under a hash of the token so repeat requests skip signature verification.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		cacheKey := "principal:" + utils.HashToken(tokenString)
		cache := utils.GetAuthCacheClient()
		if cached, err := cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			if userID, role, ok := splitPrincipal(cached); ok {
				c.Set(CtxUserID, userID)
				c.Set(CtxRole, role)
				c.Next()
				return
			}
		}

		userID, role, err := utils.PrincipalFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		cache.Set(c.Request.Context(), cacheKey, userID+"|"+role, principalCacheTTL)

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

func splitPrincipal(cached string) (userID, role string, ok bool) {
	parts := strings.SplitN(cached, "|", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
