package database

import (
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/utils"
)

// BelongsToOrg restricts a query to one tenant. Every tenant-scoped
// repository query goes through this scope so that no query can omit the
// org filter.
func BelongsToOrg(orgID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("org_id = ?", orgID)
	}
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
