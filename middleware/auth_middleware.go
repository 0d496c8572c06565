package middleware

import (
	"net/http"
	"strings"

	"cms/internal/auth"
	"cms/model"
	"cms/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware 验证 token 是否有效，并解析出当前操作者
//
// The actor is re-read from storage on every request so role changes and
// deactivation take effect immediately, not at token expiry.
func AuthMiddleware(session *auth.SessionManager, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		// 检查 token 是否在黑名单
		in, _ := session.InBlackList(token)
		if in {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token invalid"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		actor, err := users.GetByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists"})
			c.Abort()
			return
		}
		if !actor.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Set("device", claims.Device)
		c.Next()
	}
}

// Actor extracts the authenticated user placed by AuthMiddleware.
func Actor(c *gin.Context) *model.User {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*model.User)
	return actor
}

// RequireRoles rejects requests whose actor holds none of the given roles.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
