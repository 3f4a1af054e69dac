package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
)

// TeamService handles team business logic
type TeamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teams repository.TeamRepository, users repository.UserRepository) *TeamService {
	return &TeamService{
		teams: teams,
		users: users,
	}
}

// TeamView is a team with its owner and manager display names resolved
type TeamView struct {
	models.Team
	ProductOwnerUsername   string `json:"productOwnerUsername"`
	ProjectManagerUsername string `json:"projectManagerUsername"`
}

// List lists all teams with display names for their product owner and
// project manager
func (s *TeamService) List() ([]TeamView, error) {
	teams, err := s.teams.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	views := make([]TeamView, 0, len(teams))
	for _, team := range teams {
		view := TeamView{Team: team}

		if team.ProductOwnerUserID != nil {
			name, err := s.displayName(*team.ProductOwnerUserID)
			if err != nil {
				return nil, err
			}
			view.ProductOwnerUsername = name
		}
		if team.ProjectManagerUserID != nil {
			name, err := s.displayName(*team.ProjectManagerUserID)
			if err != nil {
				return nil, err
			}
			view.ProjectManagerUsername = name
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *TeamService) displayName(userID string) (string, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	return user.FullName(), nil
}
