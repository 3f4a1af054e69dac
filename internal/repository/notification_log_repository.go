package repository

import (
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/models"
)

// GormNotificationLogRepository is a GORM implementation of
// NotificationLogRepository. Inserts only; the log has no update or delete
// path.
type GormNotificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new NotificationLogRepository
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &GormNotificationLogRepository{db: db}
}

// Create appends one dispatch record
func (r *GormNotificationLogRepository) Create(entry *models.NotificationLog) error {
	return r.db.Create(entry).Error
}

// CreateMany appends a batch of dispatch records
func (r *GormNotificationLogRepository) CreateMany(entries []models.NotificationLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}
