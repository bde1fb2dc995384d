package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/hospitalms/hospital-api/internal/handler"
	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/service/auth"
)

const (
	ContextUserKey = "user"

	resolvedUserTTL = 30 * time.Second
)

type AuthMiddleware struct {
	authService auth.Servicer
	resolved    *gocache.Cache
}

func NewAuthMiddleware(authService auth.Servicer) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		resolved:    gocache.New(resolvedUserTTL, 2*resolvedUserTTL),
	}
}

// Authenticate verifies the bearer token and sets the resolved user in context.
// Resolved users are cached briefly to avoid a DB round trip on every request;
// the cache TTL is short enough that deactivation takes effect quickly.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}
		token := parts[1]

		if cached, ok := m.resolved.Get(token); ok {
			c.Set(ContextUserKey, cached.(*model.User))
			c.Next()
			return
		}

		user, err := m.authService.ResolveToken(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if sc, ok := err.(interface{ StatusCode() int }); ok {
				status = sc.StatusCode()
			}
			c.JSON(status, handler.NewErrorResponse(err.Error()))
			c.Abort()
			return
		}

		m.resolved.SetDefault(token, user)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated user does not hold the role.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}

		if user.Role != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient privileges"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserFromContext returns the authenticated user set by Authenticate, or nil.
func UserFromContext(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}
