package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string     `gorm:"type:uuid;primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	OrgID       string     `gorm:"type:uuid;not null;index" json:"orgId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	ProjectManagers []ProjectManager `gorm:"foreignKey:ProjectID" json:"projectManagers,omitempty"`
	Tasks           []Task           `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Attachments     []Attachment     `gorm:"foreignKey:ProjectID" json:"attachments,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type ProjectManager struct {
	ID        string `gorm:"type:uuid;primarykey" json:"id"`
	ProjectID string `gorm:"type:uuid;not null;index" json:"projectId"`
	OrgUserID string `gorm:"type:uuid;not null" json:"orgUserId"`

	// Relations
	OrgUser OrganizationUser `gorm:"foreignKey:OrgUserID" json:"orgUser,omitempty"`
}

func (m *ProjectManager) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
