package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/pkg/logctx"
	"github.com/lunarpay/reclaim/pkg/response"
)

// AuthMiddleware validates the Bearer token and attaches the user id to
// both gin.Context (key: "user_id") and the request context. Downstream
// handlers trust this identity without re-validating it.
func AuthMiddleware(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing bearer token"))
			return
		}

		userID, err := accounts.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.ErrorT[any](response.APIResponseCodeUnauthorized, "invalid or expired token"))
			return
		}

		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(logctx.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
