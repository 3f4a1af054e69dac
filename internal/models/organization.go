package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Subdomain string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"subdomain"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Settings *OrganizationSettings `gorm:"foreignKey:OrgID" json:"settings,omitempty"`
	Members  []OrganizationUser    `gorm:"foreignKey:OrgID" json:"members,omitempty"`
	Projects []Project             `gorm:"foreignKey:OrgID" json:"projects,omitempty"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrganizationSettings struct {
	ID          string `gorm:"type:uuid;primarykey" json:"id"`
	OrgID       string `gorm:"type:uuid;uniqueIndex;not null" json:"orgId"`
	Timezone    string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	AllowGuests bool   `gorm:"not null;default:false" json:"allowGuests"`
}

func (s *OrganizationSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
