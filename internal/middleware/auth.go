package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/constants"
	apierrors "github.com/projectpulse/project-management-api/internal/errors"
	"github.com/projectpulse/project-management-api/internal/repository"
	"github.com/projectpulse/project-management-api/internal/token"
)

// Identity is the tenant-scoped caller identity attached to every
// authenticated request.
type Identity struct {
	OrgUserID string
	UserID    string
	RoleID    string
	OrgID     string
}

// RequireAuth resolves the bearer token to an organization-scoped identity.
// A token whose membership has been revoked since issuance is rejected with
// an explicit 403.
func RequireAuth(codec *token.Codec, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			apierrors.Forbidden(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.FindByIDWithMembership(claims.UserID, claims.OrgID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "User not found")
			} else {
				apierrors.InternalError(c, "Authentication failed")
			}
			c.Abort()
			return
		}

		if claims.OrgID == "" {
			apierrors.Unauthorized(c, "Organization ID not found in token")
			c.Abort()
			return
		}

		if len(user.OrganizationUsers) == 0 {
			apierrors.Forbidden(c, "User is not a member of this organization")
			c.Abort()
			return
		}

		membership := user.OrganizationUsers[0]
		c.Set(constants.ContextKeyIdentity, Identity{
			OrgUserID: membership.ID,
			UserID:    user.ID,
			RoleID:    claims.RoleID,
			OrgID:     membership.OrgID,
		})
		c.Next()
	}
}

// GetIdentity retrieves the resolved caller identity from the context
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
