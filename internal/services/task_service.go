package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/messaging"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
)

var (
	ErrMissingTaskFields      = errors.New("title, author, project, and at least one assignee are required")
	ErrTaskNotFound           = errors.New("task not found")
	ErrChecklistNotFound      = errors.New("checklist item not found")
	ErrChecklistTitleRequired = errors.New("checklist title is required")
)

// TaskService handles task business logic, including the post-commit
// notification fan-out to assignees.
type TaskService struct {
	tasks      repository.TaskRepository
	logs       repository.NotificationLogRepository
	dispatcher messaging.Dispatcher
	logger     *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, logs repository.NotificationLogRepository, dispatcher messaging.Dispatcher, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:      tasks,
		logs:       logs,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title         string
	Description   string
	Status        models.TaskStatus
	Priority      models.TaskPriority
	Tags          string
	StartDate     *time.Time
	DueDate       *time.Time
	Points        *int
	ProjectID     string
	AuthorUserID  string
	AssignedIDs   []string
	AttachmentURL string
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	Tags        *string
	StartDate   *time.Time
	DueDate     *time.Time
	Points      *int
}

// Create validates the input, creates the task with its assignments and
// optional attachment in one transaction, and then dispatches WhatsApp
// notifications to every reachable assignee. Notification failures never
// fail the request; task creation stands on its own.
func (s *TaskService) Create(ctx context.Context, orgID string, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" || input.AuthorUserID == "" || input.ProjectID == "" || len(input.AssignedIDs) == 0 {
		return nil, ErrMissingTaskFields
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		Tags:         input.Tags,
		StartDate:    input.StartDate,
		DueDate:      input.DueDate,
		Points:       input.Points,
		ProjectID:    input.ProjectID,
		AuthorUserID: input.AuthorUserID,
		OrgID:        orgID,
	}

	var attachment *models.Attachment
	if input.AttachmentURL != "" {
		attachment = &models.Attachment{
			FileURL:      input.AttachmentURL,
			UploadedByID: &input.AuthorUserID,
		}
	}

	if err := s.tasks.CreateWithAssignments(task, input.AssignedIDs, attachment); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifyAssignees(ctx, task)

	return s.tasks.FindByID(task.ID, orgID)
}

// notifyAssignees runs the best-effort notification stage after the task
// transaction has committed. Dispatch is sequential; each recipient failure
// is isolated and recorded, and one log row is written per attempt.
func (s *TaskService) notifyAssignees(ctx context.Context, task *models.Task) {
	assignments, err := s.tasks.ListAssignmentsWithWhatsApp(task.ID)
	if err != nil {
		s.logger.Error("failed to load assignees for notification", zap.String("task_id", task.ID), zap.Error(err))
		return
	}

	content := fmt.Sprintf("Task %s has been assigned to you", task.Title)

	entries := make([]models.NotificationLog, 0, len(assignments))
	for _, assignment := range assignments {
		number := assignment.OrgUser.User.WhatsAppNumber
		if number == nil || *number == "" {
			continue
		}
		phone := strings.TrimPrefix(*number, "+")

		if err := s.dispatcher.SendWhatsApp(ctx, phone, content); err != nil {
			s.logger.Warn("task notification dispatch failed",
				zap.String("task_id", task.ID),
				zap.String("org_user_id", assignment.OrgUserID),
				zap.Error(err),
			)
		}

		entries = append(entries, models.NotificationLog{
			Type:       models.NotificationLogTypeMessageChannel,
			Context:    models.NotificationLogContextTask,
			Channel:    models.NotificationLogChannelWhatsApp,
			Content:    content,
			ToPhone:    &phone,
			ReceiverID: assignment.OrgUserID,
			TaskID:     &task.ID,
			ProjectID:  &task.ProjectID,
			OrgID:      task.OrgID,
		})
	}

	if err := s.logs.CreateMany(entries); err != nil {
		s.logger.Error("failed to write notification logs", zap.String("task_id", task.ID), zap.Error(err))
	}
}

// ListByProject lists a project's tasks within the caller's organization
func (s *TaskService) ListByProject(projectID, orgID string) ([]models.Task, error) {
	tasks, err := s.tasks.ListByProject(projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task with related data
func (s *TaskService) Get(taskID, orgID string) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListForOrgUser lists tasks authored by or assigned to an org user
func (s *TaskService) ListForOrgUser(orgUserID, orgID string) ([]models.Task, error) {
	tasks, err := s.tasks.ListForOrgUser(orgUserID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus sets a task's status. Last write wins on concurrent updates.
func (s *TaskService) UpdateStatus(taskID, orgID string, status models.TaskStatus) (*models.Task, error) {
	task, err := s.Get(taskID, orgID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

// Update applies partial updates to a task
func (s *TaskService) Update(taskID, orgID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(taskID, orgID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrMissingTaskFields
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Points != nil {
		task.Points = input.Points
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// CreateChecklist adds a checklist item to a task within the caller's
// organization
func (s *TaskService) CreateChecklist(taskID, orgID, createdBy, title string) (*models.TaskChecklist, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrChecklistTitleRequired
	}

	if _, err := s.tasks.FindByID(taskID, orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	item := &models.TaskChecklist{
		Title:     title,
		Completed: false,
		TaskID:    taskID,
		OrgID:     orgID,
		CreatedBy: createdBy,
	}
	if err := s.tasks.CreateChecklist(item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}
	return item, nil
}

// ListChecklists lists a task's checklist items
func (s *TaskService) ListChecklists(taskID, orgID string) ([]models.TaskChecklist, error) {
	items, err := s.tasks.ListChecklists(taskID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	return items, nil
}

// ChecklistUpdateInput represents input for updating a checklist item
type ChecklistUpdateInput struct {
	Title     *string
	Completed *bool
}

// UpdateChecklist applies partial updates to a checklist item
func (s *TaskService) UpdateChecklist(checklistID, orgID string, input ChecklistUpdateInput) (*models.TaskChecklist, error) {
	item, err := s.tasks.FindChecklist(checklistID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}

	if input.Title != nil && *input.Title != "" {
		item.Title = *input.Title
	}
	if input.Completed != nil {
		item.Completed = *input.Completed
	}

	if err := s.tasks.UpdateChecklist(item); err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}
	return item, nil
}
