package repository

import (
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/database"
	"github.com/projectpulse/project-management-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithAssignments creates a task, one assignment per org user, and an
// optional attachment atomically. Any failure rolls back every write.
func (r *GormTaskRepository) CreateWithAssignments(task *models.Task, orgUserIDs []string, attachment *models.Attachment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		assignments := make([]models.TaskAssignment, len(orgUserIDs))
		for i, orgUserID := range orgUserIDs {
			assignments[i] = models.TaskAssignment{
				TaskID:    task.ID,
				OrgUserID: orgUserID,
			}
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return err
		}

		if attachment != nil {
			attachment.TaskID = &task.ID
			if err := tx.Create(attachment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a task within an organization with relations preloaded
func (r *GormTaskRepository) FindByID(id, orgID string) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Preload("Author.User").
		Preload("TaskAssignments.OrgUser.User").
		Preload("Attachments").
		Preload("Comments").
		First(&task, "tasks.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists a project's tasks within an organization
func (r *GormTaskRepository) ListByProject(projectID, orgID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Where("project_id = ?", projectID).
		Preload("Author.User").
		Preload("TaskAssignments.OrgUser.User").
		Preload("Attachments").
		Preload("Comments").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListForOrgUser lists tasks authored by or assigned to an org user
func (r *GormTaskRepository) ListForOrgUser(orgUserID, orgID string) ([]models.Task, error) {
	assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
		Select("1").
		Where("task_assignments.task_id = tasks.id").
		Where("task_assignments.org_user_id = ?", orgUserID)

	var tasks []models.Task
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Where("author_user_id = ? OR EXISTS (?)", orgUserID, assignmentSubQuery).
		Preload("Author.User").
		Preload("TaskAssignments.OrgUser.User").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves a modified task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ListAssignmentsWithWhatsApp lists a task's assignments whose user has a
// reachable WhatsApp number
func (r *GormTaskRepository) ListAssignmentsWithWhatsApp(taskID string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	err := r.db.
		Joins("JOIN organization_users ON organization_users.id = task_assignments.org_user_id").
		Joins("JOIN users ON users.id = organization_users.user_id").
		Where("task_assignments.task_id = ?", taskID).
		Where("users.whats_app_number IS NOT NULL").
		Preload("OrgUser.User").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateChecklist creates a checklist item
func (r *GormTaskRepository) CreateChecklist(item *models.TaskChecklist) error {
	return r.db.Create(item).Error
}

// ListChecklists lists a task's checklist items within an organization
func (r *GormTaskRepository) ListChecklists(taskID, orgID string) ([]models.TaskChecklist, error) {
	var items []models.TaskChecklist
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		Where("task_id = ?", taskID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindChecklist finds a checklist item within an organization
func (r *GormTaskRepository) FindChecklist(id, orgID string) (*models.TaskChecklist, error) {
	var item models.TaskChecklist
	err := r.db.
		Scopes(database.BelongsToOrg(orgID)).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateChecklist saves a modified checklist item
func (r *GormTaskRepository) UpdateChecklist(item *models.TaskChecklist) error {
	return r.db.Save(item).Error
}
