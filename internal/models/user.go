package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                string    `gorm:"type:uuid;primarykey" json:"userId"`
	FirstName         string    `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName          string    `gorm:"type:varchar(100);not null" json:"lastName"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone             string    `gorm:"type:varchar(20);uniqueIndex" json:"phone"`
	PasswordHash      string    `gorm:"type:varchar(255)" json:"-"`
	WhatsAppNumber    *string   `gorm:"type:varchar(20)" json:"whatsAppNumber,omitempty"`
	ProfilePictureURL string    `gorm:"type:varchar(512)" json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	// Relations
	OrganizationUsers []OrganizationUser `gorm:"foreignKey:UserID" json:"organizationUsers,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// FullName returns the display name used in team listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
