package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/constants"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
	"github.com/projectpulse/project-management-api/internal/utils"
)

var (
	ErrOrgUserExists   = errors.New("user already exists")
	ErrOrgUserNotFound = errors.New("organization user not found")
	ErrRolesNotFound   = errors.New("role not found")
)

// OrgUserService handles organization membership business logic
type OrgUserService struct {
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
	orgUsers repository.OrgUserRepository
}

// NewOrgUserService creates a new OrgUserService
func NewOrgUserService(users repository.UserRepository, orgs repository.OrganizationRepository, orgUsers repository.OrgUserRepository) *OrgUserService {
	return &OrgUserService{
		users:    users,
		orgs:     orgs,
		orgUsers: orgUsers,
	}
}

// CreateOrgUserInput represents input for adding a member to an organization
type CreateOrgUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Roles       []string
}

// List lists a page of an organization's members with their users and
// roles, along with the total membership count
func (s *OrgUserService) List(orgID string, params utils.PaginationParams) ([]models.OrganizationUser, int64, error) {
	orgUsers, total, err := s.orgUsers.ListByOrg(orgID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organization users: %w", err)
	}
	return orgUsers, total, nil
}

// Create binds a user to the caller's organization with the named roles.
// An existing membership for the email yields a conflict and creates no
// duplicate role bindings.
func (s *OrgUserService) Create(orgID string, input CreateOrgUserInput) (*models.OrganizationUser, error) {
	roles, err := s.orgs.FindRolesByNames(input.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roles: %w", err)
	}
	if len(input.Roles) > 0 && len(roles) == 0 {
		return nil, ErrRolesNotFound
	}

	existing, err := s.users.FindByEmail(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if existing != nil {
		if _, err := s.orgUsers.FindByUserAndOrg(existing.ID, orgID); err == nil {
			return nil, ErrOrgUserExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}

		orgUser := &models.OrganizationUser{
			UserID: existing.ID,
			OrgID:  orgID,
		}
		if err := s.orgUsers.CreateWithRoles(orgUser, roles); err != nil {
			return nil, fmt.Errorf("failed to create organization user: %w", err)
		}
		orgUser.User = *existing
		return orgUser, nil
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     digitsOnly(input.PhoneNumber),
	}
	orgUser := &models.OrganizationUser{OrgID: orgID}

	if err := s.orgUsers.CreateUserWithRoles(user, orgUser, roles); err != nil {
		return nil, fmt.Errorf("failed to create organization user: %w", err)
	}
	orgUser.User = *user
	return orgUser, nil
}

// Delete removes a membership within the caller's organization
func (s *OrgUserService) Delete(orgUserID, orgID string) error {
	if err := s.orgUsers.Delete(orgUserID, orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrgUserNotFound
		}
		return fmt.Errorf("failed to delete organization user: %w", err)
	}
	return nil
}

// ListEmployees lists members of the organization holding the Employee role
func (s *OrgUserService) ListEmployees(orgID string) ([]models.OrganizationUser, error) {
	orgUsers, err := s.orgUsers.ListByRole(orgID, constants.EmployeeRoleName)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return orgUsers, nil
}

// digitsOnly strips every non-digit character from a phone number.
func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
