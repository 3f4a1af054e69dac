package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID                   string    `gorm:"type:uuid;primarykey" json:"id"`
	TeamName             string    `gorm:"type:varchar(255);not null" json:"teamName"`
	ProductOwnerUserID   *string   `gorm:"type:uuid" json:"productOwnerUserId,omitempty"`
	ProjectManagerUserID *string   `gorm:"type:uuid" json:"projectManagerUserId,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
