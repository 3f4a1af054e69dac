package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/constants"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
	"github.com/projectpulse/project-management-api/internal/token"
)

var (
	ErrEmailOrPhoneTaken  = errors.New("email or phone already in use")
	ErrSubdomainTaken     = errors.New("subdomain is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFailedToSignup     = errors.New("failed to complete signup")
)

// AuthService handles signup and login.
type AuthService struct {
	users  repository.UserRepository
	orgs   repository.OrganizationRepository
	codec  *token.Codec
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, orgs repository.OrganizationRepository, codec *token.Codec, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		orgs:   orgs,
		codec:  codec,
		logger: logger,
	}
}

// SignupInput holds the fields required to create a user and their
// organization. Field-level validation happens at the HTTP boundary.
type SignupInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Password         string
	Role             string
	OrganizationName string
	Subdomain        string
}

// Signup creates the organization, user, membership, and role binding in a
// single transaction and returns the created user.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	if _, err := s.users.FindByEmailOrPhone(input.Email, input.Phone); err == nil {
		return nil, ErrEmailOrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email and phone: %w", err)
	}

	subdomain := strings.ToLower(strings.TrimSpace(input.Subdomain))
	if _, err := s.orgs.FindBySubdomain(subdomain); err == nil {
		return nil, ErrSubdomainTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subdomain: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), constants.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleName := input.Role
	if roleName == "" {
		roleName = constants.DefaultRoleName
	}
	role, err := s.orgs.FindOrCreateRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	org := &models.Organization{
		Name:      input.OrganizationName,
		Subdomain: subdomain,
		Settings: &models.OrganizationSettings{
			Timezone:    "UTC",
			AllowGuests: false,
		},
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
	}

	orgUser := &models.OrganizationUser{}
	binding := &models.OrgUserRole{RoleID: role.ID}

	if err := s.orgs.CreateSignup(org, user, orgUser, binding); err != nil {
		s.logger.Error("signup transaction failed", zap.String("email", input.Email), zap.Error(err))
		return nil, ErrFailedToSignup
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email     string
	Password  string
	Subdomain string
}

// LoginResult carries the issued token along with the authenticated user
// and the membership the token is scoped to.
type LoginResult struct {
	Token      string
	User       *models.User
	Membership *models.OrganizationUser
}

// Login verifies credentials against the organization named by subdomain
// and issues a token scoped to that membership. A valid email with no
// membership under the subdomain fails the same way as a wrong password.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmailForSubdomain(input.Email, strings.ToLower(input.Subdomain))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if len(user.OrganizationUsers) == 0 {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	membership := &user.OrganizationUsers[0]

	roleID := ""
	if len(membership.OrgUserRoles) > 0 {
		roleID = membership.OrgUserRoles[0].RoleID
	}

	issued, err := s.codec.Issue(user.ID, membership.OrgID, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:      issued,
		User:       user,
		Membership: membership,
	}, nil
}
