package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLogType string

const (
	NotificationLogTypeMessageChannel NotificationLogType = "message_channel"
)

type NotificationLogContext string

const (
	NotificationLogContextTask NotificationLogContext = "task"
)

type NotificationLogChannel string

const (
	NotificationLogChannelWhatsApp NotificationLogChannel = "whatsApp"
)

// NotificationLog is an append-only record of one outbound dispatch attempt.
// There is no update or delete path; each attempt gets exactly one row.
type NotificationLog struct {
	ID         string                 `gorm:"type:uuid;primarykey" json:"id"`
	Type       NotificationLogType    `gorm:"type:varchar(50);not null" json:"type"`
	Context    NotificationLogContext `gorm:"type:varchar(50);not null" json:"context"`
	Channel    NotificationLogChannel `gorm:"type:varchar(50);not null" json:"channel"`
	Content    string                 `gorm:"type:text;not null" json:"content"`
	ToEmail    *string                `gorm:"type:varchar(255)" json:"toEmail"`
	ToPhone    *string                `gorm:"type:varchar(20)" json:"toPhone"`
	ReceiverID string                 `gorm:"type:uuid;not null" json:"receiverId"`
	TaskID     *string                `gorm:"type:uuid;index" json:"taskId"`
	ProjectID  *string                `gorm:"type:uuid" json:"projectId"`
	OrgID      string                 `gorm:"type:uuid;not null;index" json:"orgId"`
	CreatedAt  time.Time              `json:"createdAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
