package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/models"
)

// Migrate runs the schema migrations for every model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationSettings{},
		&models.OrganizationUser{},
		&models.Role{},
		&models.OrgUserRole{},
		&models.Project{},
		&models.ProjectManager{},
		&models.Team{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskChecklist{},
		&models.Attachment{},
		&models.Comment{},
		&models.NotificationLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
