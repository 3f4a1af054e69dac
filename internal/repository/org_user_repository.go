package repository

import (
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/database"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/utils"
)

// GormOrgUserRepository is a GORM implementation of OrgUserRepository
type GormOrgUserRepository struct {
	db *gorm.DB
}

// NewOrgUserRepository creates a new OrgUserRepository
func NewOrgUserRepository(db *gorm.DB) OrgUserRepository {
	return &GormOrgUserRepository{db: db}
}

// ListByOrg lists a page of an organization's memberships with their users,
// along with the total membership count
func (r *GormOrgUserRepository) ListByOrg(orgID string, params utils.PaginationParams) ([]models.OrganizationUser, int64, error) {
	var total int64
	err := r.db.
		Model(&models.OrganizationUser{}).
		Scopes(database.BelongsToOrg(orgID)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var orgUsers []models.OrganizationUser
	err = r.db.
		Scopes(database.BelongsToOrg(orgID), database.Paginate(params)).
		Preload("User").
		Preload("OrgUserRoles.Role").
		Find(&orgUsers).Error
	if err != nil {
		return nil, 0, err
	}
	return orgUsers, total, nil
}

// FindByUserAndOrg finds the membership binding a user to an organization
func (r *GormOrgUserRepository) FindByUserAndOrg(userID, orgID string) (*models.OrganizationUser, error) {
	var orgUser models.OrganizationUser
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Where("user_id = ?", userID).
		First(&orgUser).Error
	if err != nil {
		return nil, err
	}
	return &orgUser, nil
}

// CreateWithRoles creates a membership and its role bindings atomically
func (r *GormOrgUserRepository) CreateWithRoles(orgUser *models.OrganizationUser, roles []models.Role) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(orgUser).Error; err != nil {
			return err
		}
		return createRoleBindings(tx, orgUser, roles)
	})
}

// CreateUserWithRoles creates a user, their membership, and role bindings
// atomically
func (r *GormOrgUserRepository) CreateUserWithRoles(user *models.User, orgUser *models.OrganizationUser, roles []models.Role) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		orgUser.UserID = user.ID
		if err := tx.Create(orgUser).Error; err != nil {
			return err
		}

		return createRoleBindings(tx, orgUser, roles)
	})
}

// Delete removes a membership within the given organization
func (r *GormOrgUserRepository) Delete(id, orgID string) error {
	result := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Where("id = ?", id).
		Delete(&models.OrganizationUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByRole lists memberships in an organization holding the named role
func (r *GormOrgUserRepository) ListByRole(orgID, roleName string) ([]models.OrganizationUser, error) {
	var orgUsers []models.OrganizationUser
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Where("EXISTS (?)", r.db.Model(&models.OrgUserRole{}).
			Select("1").
			Joins("JOIN roles ON roles.id = org_user_roles.role_id").
			Where("org_user_roles.org_user_id = organization_users.id").
			Where("roles.name = ?", roleName)).
		Preload("User").
		Preload("OrgUserRoles.Role").
		Find(&orgUsers).Error
	if err != nil {
		return nil, err
	}
	return orgUsers, nil
}

func createRoleBindings(tx *gorm.DB, orgUser *models.OrganizationUser, roles []models.Role) error {
	if len(roles) == 0 {
		return nil
	}

	bindings := make([]models.OrgUserRole, len(roles))
	for i, role := range roles {
		bindings[i] = models.OrgUserRole{
			OrgUserID: orgUser.ID,
			RoleID:    role.ID,
			OrgID:     orgUser.OrgID,
		}
	}
	return tx.Create(&bindings).Error
}
