package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/database"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
	"github.com/projectpulse/project-management-api/internal/token"
)

type authMiddlewareTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	codec  *token.Codec

	org     models.Organization
	user    models.User
	orgUser models.OrganizationUser
}

func setupAuthMiddlewareTestEnv(t *testing.T) *authMiddlewareTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	codec := token.NewCodec("test-secret", time.Hour)
	userRepo := repository.NewUserRepository(db)

	router := gin.New()
	router.GET("/me", RequireAuth(codec, userRepo), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"orgUserId": identity.OrgUserID,
			"userId":    identity.UserID,
			"orgId":     identity.OrgID,
		})
	})

	env := &authMiddlewareTestEnv{db: db, router: router, codec: codec}

	env.org = models.Organization{Name: "Acme Inc", Subdomain: "acme"}
	require.NoError(t, db.Create(&env.org).Error)

	env.user = models.User{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "15551234567",
	}
	require.NoError(t, db.Create(&env.user).Error)

	env.orgUser = models.OrganizationUser{UserID: env.user.ID, OrgID: env.org.ID}
	require.NoError(t, db.Create(&env.orgUser).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *authMiddlewareTestEnv) request(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingToken(t *testing.T) {
	env := setupAuthMiddlewareTestEnv(t)

	w := env.request(t, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, "Basic abc")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	env := setupAuthMiddlewareTestEnv(t)

	w := env.request(t, "Bearer not-a-token")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	env := setupAuthMiddlewareTestEnv(t)

	expired := token.NewCodec("test-secret", -time.Minute)
	raw, err := expired.Issue(env.user.ID, env.org.ID, "")
	require.NoError(t, err)

	w := env.request(t, "Bearer "+raw)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	env := setupAuthMiddlewareTestEnv(t)

	raw, err := env.codec.Issue("missing-user", env.org.ID, "")
	require.NoError(t, err)

	w := env.request(t, "Bearer "+raw)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireAuth_RevokedMembership(t *testing.T) {
	env := setupAuthMiddlewareTestEnv(t)

	raw, err := env.codec.Issue(env.user.ID, env.org.ID, "")
	require.NoError(t, err)

	// Revoke the membership after the token was issued.
	require.NoError(t, env.db.Delete(&env.orgUser).Error)

	w := env.request(t, "Bearer "+raw)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_Success(t *testing.T) {
	env := setupAuthMiddlewareTestEnv(t)

	raw, err := env.codec.Issue(env.user.ID, env.org.ID, "role-1")
	require.NoError(t, err)

	w := env.request(t, "Bearer "+raw)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, env.orgUser.ID, body["orgUserId"])
	require.Equal(t, env.user.ID, body["userId"])
	require.Equal(t, env.org.ID, body["orgId"])
}
