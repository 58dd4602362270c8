package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/pkg/config"
	"github.com/lunarpay/reclaim/pkg/logctx"
)

func authAccounts() *account.Service {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return account.New(nil, cfg, zap.NewNop().Sugar())
}

func TestAuthMiddleware_AttachesUserID(t *testing.T) {
	accounts := authAccounts()
	token, err := accounts.IssueToken("user-9")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	var fromGin, fromCtx string
	r.GET("/x", AuthMiddleware(accounts), func(c *gin.Context) {
		fromGin = UserID(c)
		fromCtx = logctx.UserID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "user-9", fromGin)
	// The id must also ride the request context for logctx enrichment.
	require.Equal(t, "user-9", fromCtx)
}

func TestAuthMiddleware_RejectsMissingOrBadToken(t *testing.T) {
	accounts := authAccounts()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", AuthMiddleware(accounts), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
