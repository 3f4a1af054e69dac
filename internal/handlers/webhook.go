package handlers

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives inbound callbacks from the messaging provider.
// It runs behind the provider-signature middleware; the basic-auth check
// here is the second of the two gates.
type WebhookHandler struct {
	username string
	password string
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(username, password string) *WebhookHandler {
	return &WebhookHandler{
		username: username,
		password: password,
	}
}

// Inbound validates the webhook basic-auth credentials and acknowledges
// the message.
func (h *WebhookHandler) Inbound(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found || !h.credentialsMatch(username, password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message received"})
}

func (h *WebhookHandler) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.password)) == 1
	return userOK && passOK
}
