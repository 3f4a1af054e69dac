package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/projectpulse/project-management-api/internal/errors"
	"github.com/projectpulse/project-management-api/internal/middleware"
	"github.com/projectpulse/project-management-api/internal/services"
)

// TeamHandler coordinates team and employee listing handlers.
type TeamHandler struct {
	teamService    *services.TeamService
	orgUserService *services.OrgUserService
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(teamService *services.TeamService, orgUserService *services.OrgUserService) *TeamHandler {
	return &TeamHandler{
		teamService:    teamService,
		orgUserService: orgUserService,
	}
}

// List lists all teams with resolved owner and manager names
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teamService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch teams")
		return
	}

	c.JSON(http.StatusOK, teams)
}

// ListEmployees lists the caller organization's members holding the
// Employee role
func (h *TeamHandler) ListEmployees(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	employees, err := h.orgUserService.ListEmployees(identity.OrgID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, employees)
}
