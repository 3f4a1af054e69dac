package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/projectpulse/project-management-api/internal/errors"
	"github.com/projectpulse/project-management-api/internal/middleware"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/services"
)

// TaskHandler coordinates task and checklist HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// List returns the tasks of one project within the caller's organization
func (h *TaskHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID := c.Query("projectId")
	if projectID == "" {
		apierrors.BadRequest(c, "projectId is required")
		return
	}

	tasks, err := h.taskService.ListByProject(projectID, identity.OrgID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Create creates a task with its assignments and optional attachment, then
// notifies reachable assignees.
func (h *TaskHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title         string     `json:"title" binding:"required"`
		Description   string     `json:"description"`
		Status        string     `json:"status"`
		Priority      string     `json:"priority"`
		Tags          string     `json:"tags"`
		StartDate     *time.Time `json:"startDate"`
		DueDate       *time.Time `json:"dueDate"`
		Points        *int       `json:"points"`
		ProjectID     string     `json:"projectId" binding:"required"`
		AuthorUserID  string     `json:"authorUserId" binding:"required"`
		AssignedIDs   []string   `json:"assignedIds" binding:"required,min=1"`
		AttachmentURL string     `json:"attachmentUrl"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, bindingErrorMessages(err))
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), identity.OrgID, services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        models.TaskStatus(req.Status),
		Priority:      models.TaskPriority(req.Priority),
		Tags:          req.Tags,
		StartDate:     req.StartDate,
		DueDate:       req.DueDate,
		Points:        req.Points,
		ProjectID:     req.ProjectID,
		AuthorUserID:  req.AuthorUserID,
		AssignedIDs:   req.AssignedIDs,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Get returns one task with its relations
func (h *TaskHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.Get(c.Param("taskId"), identity.OrgID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update applies partial updates to a task
func (h *TaskHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		Tags        *string    `json:"tags"`
		StartDate   *time.Time `json:"startDate"`
		DueDate     *time.Time `json:"dueDate"`
		Points      *int       `json:"points"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Points:      req.Points,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.Update(c.Param("taskId"), identity.OrgID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateStatus sets a task's status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, bindingErrorMessages(err))
		return
	}

	task, err := h.taskService.UpdateStatus(c.Param("taskId"), identity.OrgID, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateChecklist adds a checklist item to a task
func (h *TaskHandler) CreateChecklist(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateChecklistRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, bindingErrorMessages(err))
		return
	}

	item, err := h.taskService.CreateChecklist(c.Param("taskId"), identity.OrgID, identity.OrgUserID, req.Title)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListChecklists lists a task's checklist items
func (h *TaskHandler) ListChecklists(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	items, err := h.taskService.ListChecklists(c.Param("taskId"), identity.OrgID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, items)
}

// UpdateChecklist applies partial updates to a checklist item
func (h *TaskHandler) UpdateChecklist(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateChecklistRequest struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.taskService.UpdateChecklist(c.Param("checklistId"), identity.OrgID, services.ChecklistUpdateInput{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingTaskFields),
		errors.Is(err, services.ErrChecklistTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrChecklistNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
