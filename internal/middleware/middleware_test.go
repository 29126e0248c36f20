package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"creator_wallet/internal/testutil"
	"creator_wallet/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", JWTAuthMiddleware(secret), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "email": c.GetString(EmailKey)})
	})

	token, err := utils.GenerateJWT(5, "fan@example.com", secret)
	require.NoError(t, err)

	w := serve(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":5,"email":"fan@example.com"}`, w.Body.String())

	for _, header := range []string{"", token, "Bearer nope"} {
		w := serve(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "admin@example.com", "admin")
	fan := testutil.CreateUser(t, db, "fan@example.com", "")

	r := gin.New()
	r.GET("/", JWTAuthMiddleware(secret), AdminOnlyMiddleware(db), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	adminToken, err := utils.GenerateJWT(admin.ID, admin.Email, secret)
	require.NoError(t, err)
	fanToken, err := utils.GenerateJWT(fan.ID, fan.Email, secret)
	require.NoError(t, err)
	ghostToken, err := utils.GenerateJWT(9999, "ghost@example.com", secret)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, serve(r, "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "Bearer "+fanToken).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "Bearer "+ghostToken).Code)
}
