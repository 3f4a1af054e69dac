package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func webhookTestRouter(secret string) *gin.Engine {
	router := gin.New()
	router.POST("/inbound", RequireProviderSignature(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func signProviderToken(t *testing.T, secret string) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestRequireProviderSignature_MissingHeader(t *testing.T) {
	router := webhookTestRouter("provider-secret")

	req := httptest.NewRequest(http.MethodPost, "/inbound", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error": "Unauthorized: Invalid Signature"}`, w.Body.String())
}

func TestRequireProviderSignature_WrongSecret(t *testing.T) {
	router := webhookTestRouter("provider-secret")

	req := httptest.NewRequest(http.MethodPost, "/inbound", nil)
	req.Header.Set("Authorization", "Bearer "+signProviderToken(t, "another-secret"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireProviderSignature_GarbageToken(t *testing.T) {
	router := webhookTestRouter("provider-secret")

	req := httptest.NewRequest(http.MethodPost, "/inbound", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireProviderSignature_ValidToken(t *testing.T) {
	router := webhookTestRouter("provider-secret")

	req := httptest.NewRequest(http.MethodPost, "/inbound", nil)
	req.Header.Set("Authorization", "Bearer "+signProviderToken(t, "provider-secret"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
