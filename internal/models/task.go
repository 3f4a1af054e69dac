package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusToDo           TaskStatus = "ToDo"
	TaskStatusWorkInProgress TaskStatus = "WorkInProgress"
	TaskStatusUnderReview    TaskStatus = "UnderReview"
	TaskStatusCompleted      TaskStatus = "Completed"
)

type TaskPriority string

const (
	TaskPriorityUrgent  TaskPriority = "Urgent"
	TaskPriorityHigh    TaskPriority = "High"
	TaskPriorityMedium  TaskPriority = "Medium"
	TaskPriorityLow     TaskPriority = "Low"
	TaskPriorityBacklog TaskPriority = "Backlog"
)

type Task struct {
	ID           string       `gorm:"type:uuid;primarykey" json:"id"`
	Title        string       `gorm:"type:varchar(255);not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       TaskStatus   `gorm:"type:varchar(30)" json:"status"`
	Priority     TaskPriority `gorm:"type:varchar(20)" json:"priority"`
	Tags         string       `gorm:"type:varchar(255)" json:"tags"`
	StartDate    *time.Time   `json:"startDate"`
	DueDate      *time.Time   `json:"dueDate"`
	Points       *int         `json:"points"`
	ProjectID    string       `gorm:"type:uuid;not null;index" json:"projectId"`
	AuthorUserID string       `gorm:"type:uuid;not null;index" json:"authorUserId"`
	OrgID        string       `gorm:"type:uuid;not null;index" json:"orgId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`

	// Relations
	Author          OrganizationUser `gorm:"foreignKey:AuthorUserID" json:"author,omitempty"`
	Project         Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	TaskAssignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"taskAssignments,omitempty"`
	Attachments     []Attachment     `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
	Checklists      []TaskChecklist  `gorm:"foreignKey:TaskID" json:"checklists,omitempty"`
	Comments        []Comment        `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
