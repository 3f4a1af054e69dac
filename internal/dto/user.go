package dto

import (
	"github.com/projectpulse/project-management-api/internal/models"
)

// UserDTO represents a user's public fields in API responses. The password
// hash is never part of any response shape.
type UserDTO struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// LoginUserDTO is the user projection returned on login
type LoginUserDTO struct {
	UserID       string          `json:"userId"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Email        string          `json:"email"`
	Organization OrganizationDTO `json:"organization"`
}

// ToUserDTO maps a user to its public projection
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
}

// ToLoginUserDTO maps a user and the organization their token is scoped to
func ToLoginUserDTO(user models.User, org models.Organization) LoginUserDTO {
	return LoginUserDTO{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Organization: OrganizationDTO{
			Name:      org.Name,
			Subdomain: org.Subdomain,
		},
	}
}
