package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/database"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
	"github.com/projectpulse/project-management-api/internal/token"
)

type authServiceTestEnv struct {
	db      *gorm.DB
	service *AuthService
	codec   *token.Codec
}

func setupAuthServiceTestEnv(t *testing.T) authServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	codec := token.NewCodec("test-secret", time.Hour)
	service := NewAuthService(userRepo, orgRepo, codec, zap.NewNop())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authServiceTestEnv{
		db:      db,
		service: service,
		codec:   codec,
	}
}

func validSignupInput() SignupInput {
	return SignupInput{
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@example.com",
		Phone:            "15551234567",
		Password:         "supersecret",
		OrganizationName: "Acme Inc",
		Subdomain:        "acme",
	}
}

func TestAuthService_Signup(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	user, err := env.service.Signup(validSignupInput())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))

	var userCount, orgCount, settingsCount, memberCount, bindingCount int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, env.db.Model(&models.Organization{}).Count(&orgCount).Error)
	require.NoError(t, env.db.Model(&models.OrganizationSettings{}).Count(&settingsCount).Error)
	require.NoError(t, env.db.Model(&models.OrganizationUser{}).Count(&memberCount).Error)
	require.NoError(t, env.db.Model(&models.OrgUserRole{}).Count(&bindingCount).Error)
	require.EqualValues(t, 1, userCount)
	require.EqualValues(t, 1, orgCount)
	require.EqualValues(t, 1, settingsCount)
	require.EqualValues(t, 1, memberCount)
	require.EqualValues(t, 1, bindingCount)

	var role models.Role
	require.NoError(t, env.db.First(&role, "name = ?", "User").Error)
}

func TestAuthService_Signup_NormalizesSubdomain(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	input := validSignupInput()
	input.Subdomain = "  ACME  "
	_, err := env.service.Signup(input)
	require.NoError(t, err)

	var org models.Organization
	require.NoError(t, env.db.First(&org).Error)
	require.Equal(t, "acme", org.Subdomain)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	_, err := env.service.Signup(validSignupInput())
	require.NoError(t, err)

	input := validSignupInput()
	input.Phone = "15559876543"
	input.Subdomain = "other"
	_, err = env.service.Signup(input)
	require.ErrorIs(t, err, ErrEmailOrPhoneTaken)

	var userCount int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&userCount).Error)
	require.EqualValues(t, 1, userCount)
}

func TestAuthService_Signup_DuplicateSubdomain(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	_, err := env.service.Signup(validSignupInput())
	require.NoError(t, err)

	input := validSignupInput()
	input.Email = "john@example.com"
	input.Phone = "15559876543"
	_, err = env.service.Signup(input)
	require.ErrorIs(t, err, ErrSubdomainTaken)

	var orgCount int64
	require.NoError(t, env.db.Model(&models.Organization{}).Count(&orgCount).Error)
	require.EqualValues(t, 1, orgCount)
}

func TestAuthService_Signup_RollsBackOnFailure(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	// Dropping the binding table makes the final write of the signup
	// transaction fail, which must roll back every earlier write.
	require.NoError(t, env.db.Migrator().DropTable(&models.OrgUserRole{}))

	_, err := env.service.Signup(validSignupInput())
	require.ErrorIs(t, err, ErrFailedToSignup)

	var userCount, orgCount, memberCount int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, env.db.Model(&models.Organization{}).Count(&orgCount).Error)
	require.NoError(t, env.db.Model(&models.OrganizationUser{}).Count(&memberCount).Error)
	require.EqualValues(t, 0, userCount)
	require.EqualValues(t, 0, orgCount)
	require.EqualValues(t, 0, memberCount)
}

func TestAuthService_Login(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	user, err := env.service.Signup(validSignupInput())
	require.NoError(t, err)

	result, err := env.service.Login(LoginInput{
		Email:     "jane@example.com",
		Password:  "supersecret",
		Subdomain: "acme",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, user.ID, result.User.ID)
	require.Equal(t, "acme", result.Membership.Organization.Subdomain)

	claims, err := env.codec.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, result.Membership.OrgID, claims.OrgID)
	require.NotEmpty(t, claims.RoleID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	_, err := env.service.Signup(validSignupInput())
	require.NoError(t, err)

	_, err = env.service.Login(LoginInput{
		Email:     "jane@example.com",
		Password:  "wrongpassword",
		Subdomain: "acme",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongSubdomain(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	_, err := env.service.Signup(validSignupInput())
	require.NoError(t, err)

	// A valid account under a subdomain it has no membership in must fail
	// exactly like a bad password.
	_, err = env.service.Login(LoginInput{
		Email:     "jane@example.com",
		Password:  "supersecret",
		Subdomain: "other",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	env := setupAuthServiceTestEnv(t)

	_, err := env.service.Login(LoginInput{
		Email:     "nobody@example.com",
		Password:  "supersecret",
		Subdomain: "acme",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
