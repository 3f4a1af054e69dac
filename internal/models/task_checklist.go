package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskChecklist struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	TaskID    string    `gorm:"type:uuid;not null;index" json:"taskId"`
	OrgID     string    `gorm:"type:uuid;not null;index" json:"orgId"`
	CreatedBy string    `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *TaskChecklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
