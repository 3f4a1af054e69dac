package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskAssignment links a task to an organization user. It is the fan-out
// unit for assignment notifications.
type TaskAssignment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	TaskID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_task_assignments_task_org_user" json:"taskId"`
	OrgUserID string    `gorm:"type:uuid;not null;uniqueIndex:idx_task_assignments_task_org_user" json:"orgUserId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Task    Task             `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	OrgUser OrganizationUser `gorm:"foreignKey:OrgUserID" json:"orgUser,omitempty"`
}

func (a *TaskAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
