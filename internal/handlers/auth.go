package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectpulse/project-management-api/internal/dto"
	apierrors "github.com/projectpulse/project-management-api/internal/errors"
	"github.com/projectpulse/project-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a user together with their organization.
func (h *AuthHandler) Register(c *gin.Context) {
	type SignupRequest struct {
		FirstName        string `json:"firstName" binding:"required,min=2"`
		LastName         string `json:"lastName" binding:"required,min=2"`
		Email            string `json:"email" binding:"required,email"`
		Phone            string `json:"phone" binding:"required,min=10"`
		Password         string `json:"password" binding:"required,min=8"`
		Role             string `json:"role"`
		SubDomain        string `json:"subDomain" binding:"required,min=3"`
		OrganizationName string `json:"organizationName" binding:"required,min=3"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, bindingErrorMessages(err))
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Password:         req.Password,
		Role:             req.Role,
		OrganizationName: req.OrganizationName,
		Subdomain:        req.SubDomain,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User and Organization created successfully",
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates a user against the organization named by subdomain
// and returns a token scoped to that membership.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		SubDomain string `json:"subDomain" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, bindingErrorMessages(err))
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Subdomain: req.SubDomain,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    dto.ToLoginUserDTO(*result.User, result.Membership.Organization),
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailOrPhoneTaken):
		apierrors.Conflict(c, "Email or phone already in use")
	case errors.Is(err, services.ErrSubdomainTaken):
		apierrors.Conflict(c, "Subdomain is already in use")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, "Invalid email or password"))
	default:
		apierrors.InternalError(c, "")
	}
}
