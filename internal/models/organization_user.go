package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationUser binds a User to an Organization. It is the scoping unit
// for role bindings, project management, task authorship and assignment.
type OrganizationUser struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_org_users_user_org" json:"userId"`
	OrgID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_org_users_user_org" json:"orgId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organization Organization  `gorm:"foreignKey:OrgID" json:"organization,omitempty"`
	OrgUserRoles []OrgUserRole `gorm:"foreignKey:OrgUserID" json:"orgUserRoles,omitempty"`
}

func (ou *OrganizationUser) BeforeCreate(tx *gorm.DB) error {
	if ou.ID == "" {
		ou.ID = uuid.NewString()
	}
	return nil
}
