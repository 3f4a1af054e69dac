package repository

import (
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithMembership finds a user by ID, preloading only the membership
// row matching the given organization
func (r *GormUserRepository) FindByIDWithMembership(id, orgID string) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("OrganizationUsers", "org_id = ?", orgID).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrPhone finds any user holding the given email or phone
func (r *GormUserRepository) FindByEmailOrPhone(email, phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? OR phone = ?", email, phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailForSubdomain finds a user by email, preloading only the
// memberships whose organization matches the given subdomain
func (r *GormUserRepository) FindByEmailForSubdomain(email, subdomain string) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("OrganizationUsers", func(db *gorm.DB) *gorm.DB {
			return db.Select("organization_users.*").
				Joins("JOIN organizations ON organizations.id = organization_users.org_id").
				Where("organizations.subdomain = ?", subdomain)
		}).
		Preload("OrganizationUsers.Organization").
		Preload("OrganizationUsers.OrgUserRoles").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
