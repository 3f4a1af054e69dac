package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attachment struct {
	ID           string    `gorm:"type:uuid;primarykey" json:"id"`
	FileURL      string    `gorm:"type:varchar(512);not null" json:"fileURL"`
	FileName     string    `gorm:"type:varchar(255)" json:"fileName"`
	TaskID       *string   `gorm:"type:uuid;index" json:"taskId,omitempty"`
	ProjectID    *string   `gorm:"type:uuid;index" json:"projectId,omitempty"`
	UploadedByID *string   `gorm:"type:uuid" json:"uploadedById,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
