package handlers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func webhookRequest(t *testing.T, handler *WebhookHandler, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.POST("/inbound", handler.Inbound)

	req := httptest.NewRequest(http.MethodPost, "/inbound", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func basicAuthHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestWebhookHandler_Inbound(t *testing.T) {
	handler := NewWebhookHandler("vonage", "hookpass")

	w := webhookRequest(t, handler, basicAuthHeader("vonage", "hookpass"))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message": "Message received"}`, w.Body.String())
}

func TestWebhookHandler_Inbound_MissingHeader(t *testing.T) {
	handler := NewWebhookHandler("vonage", "hookpass")

	w := webhookRequest(t, handler, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message": "Unauthorized"}`, w.Body.String())
}

func TestWebhookHandler_Inbound_WrongCredentials(t *testing.T) {
	handler := NewWebhookHandler("vonage", "hookpass")

	w := webhookRequest(t, handler, basicAuthHeader("vonage", "wrong"))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = webhookRequest(t, handler, basicAuthHeader("intruder", "hookpass"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookHandler_Inbound_MalformedHeader(t *testing.T) {
	handler := NewWebhookHandler("vonage", "hookpass")

	w := webhookRequest(t, handler, "Basic !!not-base64!!")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = webhookRequest(t, handler, "Basic "+base64.StdEncoding.EncodeToString([]byte("no-colon")))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
