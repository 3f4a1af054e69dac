package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/projectpulse/project-management-api/internal/errors"
	"github.com/projectpulse/project-management-api/internal/middleware"
	"github.com/projectpulse/project-management-api/internal/services"
	"github.com/projectpulse/project-management-api/internal/utils"
)

// OrgUserHandler coordinates organization membership HTTP handlers.
type OrgUserHandler struct {
	orgUserService *services.OrgUserService
	taskService    *services.TaskService
}

// NewOrgUserHandler creates a new OrgUserHandler
func NewOrgUserHandler(orgUserService *services.OrgUserService, taskService *services.TaskService) *OrgUserHandler {
	return &OrgUserHandler{
		orgUserService: orgUserService,
		taskService:    taskService,
	}
}

// List lists a page of the caller organization's members
func (h *OrgUserHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	orgUsers, total, err := h.orgUserService.List(identity.OrgID, params)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": orgUsers,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Create binds a user to the caller's organization with the given roles
func (h *OrgUserHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateOrgUserRequest struct {
		FirstName   string   `json:"firstName" binding:"required"`
		LastName    string   `json:"lastName" binding:"required"`
		Email       string   `json:"email" binding:"required,email"`
		PhoneNumber string   `json:"phoneNumber" binding:"required,min=10"`
		Roles       []string `json:"roles"`
	}

	var req CreateOrgUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, bindingErrorMessages(err))
		return
	}

	orgUser, err := h.orgUserService.Create(identity.OrgID, services.CreateOrgUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Roles:       req.Roles,
	})
	if err != nil {
		respondOrgUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, orgUser)
}

// Delete removes a membership within the caller's organization
func (h *OrgUserHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.orgUserService.Delete(c.Param("id"), identity.OrgID); err != nil {
		respondOrgUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organization user deleted successfully"})
}

// ListTasks lists tasks authored by or assigned to one of the caller
// organization's members
func (h *OrgUserHandler) ListTasks(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListForOrgUser(c.Param("id"), identity.OrgID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func respondOrgUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrgUserExists):
		apierrors.Conflict(c, "User already exists")
	case errors.Is(err, services.ErrRolesNotFound):
		apierrors.NotFound(c, "Role not found")
	case errors.Is(err, services.ErrOrgUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
