package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/models"
)

var (
	// ErrCreateOrganization is returned when creating the organization fails inside the signup transaction.
	ErrCreateOrganization = errors.New("organization repository: create organization failed")
	// ErrCreateUser is returned when creating the user fails inside the signup transaction.
	ErrCreateUser = errors.New("organization repository: create user failed")
	// ErrCreateOrganizationUser is returned when creating the membership fails inside the signup transaction.
	ErrCreateOrganizationUser = errors.New("organization repository: create organization user failed")
	// ErrCreateRoleBinding is returned when creating the role binding fails inside the signup transaction.
	ErrCreateRoleBinding = errors.New("organization repository: create role binding failed")
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindBySubdomain finds an organization by its subdomain
func (r *GormOrganizationRepository) FindBySubdomain(subdomain string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("subdomain = ?", subdomain).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindOrCreateRole resolves a role by name, creating it when absent
func (r *GormOrganizationRepository) FindOrCreateRole(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role = models.Role{Name: name}
	if err := r.db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindRolesByNames lists the roles matching the given names
func (r *GormOrganizationRepository) FindRolesByNames(names []string) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// CreateSignup creates the organization with settings, the user, the
// membership, and the role binding atomically. A failure at any step rolls
// back every write.
func (r *GormOrganizationRepository) CreateSignup(org *models.Organization, user *models.User, orgUser *models.OrganizationUser, binding *models.OrgUserRole) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Creating the organization also persists its settings row through
		// the association.
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrganization, err)
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		orgUser.UserID = user.ID
		orgUser.OrgID = org.ID
		if err := tx.Create(orgUser).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrganizationUser, err)
		}

		binding.OrgUserID = orgUser.ID
		binding.OrgID = org.ID
		if err := tx.Create(binding).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateRoleBinding, err)
		}

		return nil
	})
}
