package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/models"
)

const userContextKey = "auth.user"

// TokenLookup resolves an API token to a user account.
type TokenLookup interface {
	GetByToken(ctx context.Context, token string) (*models.User, error)
}

// TokenAuth authenticates "Authorization: Token <key>" requests. The
// token may also ride in the query string for tooling that can not set
// headers. Blocked accounts are refused outright.
func TokenAuth(users TokenLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if header := c.GetHeader("Authorization"); header != "" {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Token"))
		}

		if token == "" {
			c.Error(common.Errf(http.StatusUnauthorized, "authentication credentials were not provided"))
			c.Abort()
			return
		}

		user, err := users.GetByToken(c.Request.Context(), token)
		if err != nil {
			c.Error(common.Errf(http.StatusUnauthorized, "invalid token"))
			c.Abort()
			return
		}
		if user.Blocked {
			c.Error(common.Errf(http.StatusForbidden, "account is blocked"))
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by TokenAuth.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
