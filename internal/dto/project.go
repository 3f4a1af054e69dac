package dto

import (
	"github.com/projectpulse/project-management-api/internal/models"
)

// ProjectSummaryDTO is a project with its per-status task counts
type ProjectSummaryDTO struct {
	models.Project
	TotalNumberOfTasks           int `json:"totalNumberOfTasks"`
	TotalNumberOfInProgressTasks int `json:"totalNumberOfInProgressTasks"`
	TotalNumberOfCompletedTasks  int `json:"totalNumberOfCompletedTasks"`
}

// ToProjectSummary computes the task counts from the preloaded tasks
func ToProjectSummary(project models.Project) ProjectSummaryDTO {
	summary := ProjectSummaryDTO{
		Project:            project,
		TotalNumberOfTasks: len(project.Tasks),
	}
	for _, task := range project.Tasks {
		switch task.Status {
		case models.TaskStatusWorkInProgress:
			summary.TotalNumberOfInProgressTasks++
		case models.TaskStatusCompleted:
			summary.TotalNumberOfCompletedTasks++
		}
	}
	return summary
}
