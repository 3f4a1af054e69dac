package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	TaskID    string    `gorm:"type:uuid;not null;index" json:"taskId"`
	OrgUserID string    `gorm:"type:uuid;not null" json:"orgUserId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	OrgUser OrganizationUser `gorm:"foreignKey:OrgUserID" json:"orgUser,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
