package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	ID   string `gorm:"type:uuid;primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// OrgUserRole binds a role to an organization user within one org context.
// Effective permissions are always evaluated per organization.
type OrgUserRole struct {
	ID        string `gorm:"type:uuid;primarykey" json:"id"`
	OrgUserID string `gorm:"type:uuid;not null;index" json:"orgUserId"`
	RoleID    string `gorm:"type:uuid;not null" json:"roleId"`
	OrgID     string `gorm:"type:uuid;not null;index" json:"orgId"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (r *OrgUserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
