package repository

import (
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/database"
	"github.com/projectpulse/project-management-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// ListByOrg lists an organization's projects with tasks, managers, and
// attachments preloaded
func (r *GormProjectRepository) ListByOrg(orgID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Preload("Tasks").
		Preload("Attachments").
		Preload("ProjectManagers.OrgUser.User").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByID finds a project within an organization
func (r *GormProjectRepository) FindByID(id, orgID string) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateWithManagers creates a project, its manager rows, and an optional
// image attachment atomically
func (r *GormProjectRepository) CreateWithManagers(project *models.Project, managerIDs []string, attachment *models.Attachment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		if len(managerIDs) > 0 {
			managers := make([]models.ProjectManager, len(managerIDs))
			for i, orgUserID := range managerIDs {
				managers[i] = models.ProjectManager{
					ProjectID: project.ID,
					OrgUserID: orgUserID,
				}
			}
			if err := tx.Create(&managers).Error; err != nil {
				return err
			}
		}

		if attachment != nil {
			attachment.ProjectID = &project.ID
			if err := tx.Create(attachment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a project within an organization
func (r *GormProjectRepository) Delete(id, orgID string) error {
	result := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Where("id = ?", id).
		Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
