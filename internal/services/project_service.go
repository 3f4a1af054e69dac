package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name is required")
)

// ProjectService handles project business logic
type ProjectService struct {
	projects repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	ImageURL    string
	ImageName   string
	ManagerIDs  []string
}

// List returns an organization's projects with tasks preloaded for the
// per-status counts computed at the response layer
func (s *ProjectService) List(orgID string) ([]models.Project, error) {
	projects, err := s.projects.ListByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project within the caller's organization
func (s *ProjectService) Get(projectID, orgID string) (*models.Project, error) {
	project, err := s.projects.FindByID(projectID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Create creates a project with its managers and an optional image
// attachment
func (s *ProjectService) Create(orgID string, input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OrgID:       orgID,
	}

	var attachment *models.Attachment
	if input.ImageURL != "" {
		attachment = &models.Attachment{
			FileURL:  input.ImageURL,
			FileName: input.ImageName,
		}
	}

	if err := s.projects.CreateWithManagers(project, input.ManagerIDs, attachment); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Delete removes a project within the caller's organization
func (s *ProjectService) Delete(projectID, orgID string) error {
	if err := s.projects.Delete(projectID, orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
