package repository

import (
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByIDWithMembership finds a user by ID, preloading only the
	// membership row matching the given organization
	FindByIDWithMembership(id, orgID string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByEmailOrPhone finds any user holding the given email or phone
	FindByEmailOrPhone(email, phone string) (*models.User, error)

	// FindByEmailForSubdomain finds a user by email, preloading only the
	// memberships whose organization matches the given subdomain, along
	// with their organization and role bindings
	FindByEmailForSubdomain(email, subdomain string) (*models.User, error)
}

// OrganizationRepository defines the interface for organization and role
// data access
type OrganizationRepository interface {
	// FindBySubdomain finds an organization by its subdomain
	FindBySubdomain(subdomain string) (*models.Organization, error)

	// FindOrCreateRole resolves a role by name, creating it when absent
	FindOrCreateRole(name string) (*models.Role, error)

	// FindRolesByNames lists the roles matching the given names
	FindRolesByNames(names []string) ([]models.Role, error)

	// CreateSignup creates the organization (with settings), user,
	// membership, and role binding within a single transaction
	CreateSignup(org *models.Organization, user *models.User, orgUser *models.OrganizationUser, binding *models.OrgUserRole) error
}

// OrgUserRepository defines the interface for organization membership data
// access
type OrgUserRepository interface {
	// ListByOrg lists a page of an organization's memberships with their
	// users, along with the total membership count
	ListByOrg(orgID string, params utils.PaginationParams) ([]models.OrganizationUser, int64, error)

	// FindByUserAndOrg finds the membership binding a user to an organization
	FindByUserAndOrg(userID, orgID string) (*models.OrganizationUser, error)

	// CreateWithRoles creates a membership and its role bindings in a
	// single transaction
	CreateWithRoles(orgUser *models.OrganizationUser, roles []models.Role) error

	// CreateUserWithRoles creates a user, their membership, and role
	// bindings in a single transaction
	CreateUserWithRoles(user *models.User, orgUser *models.OrganizationUser, roles []models.Role) error

	// Delete removes a membership within the given organization
	Delete(id, orgID string) error

	// ListByRole lists memberships in an organization holding the named role
	ListByRole(orgID, roleName string) ([]models.OrganizationUser, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// ListByOrg lists an organization's projects with tasks, managers,
	// and attachments preloaded
	ListByOrg(orgID string) ([]models.Project, error)

	// FindByID finds a project within an organization
	FindByID(id, orgID string) (*models.Project, error)

	// CreateWithManagers creates a project, its manager rows, and an
	// optional image attachment in a single transaction
	CreateWithManagers(project *models.Project, managerIDs []string, attachment *models.Attachment) error

	// Delete removes a project within an organization
	Delete(id, orgID string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithAssignments creates a task, one assignment per org user,
	// and an optional attachment in a single transaction
	CreateWithAssignments(task *models.Task, orgUserIDs []string, attachment *models.Attachment) error

	// FindByID finds a task within an organization with relations preloaded
	FindByID(id, orgID string) (*models.Task, error)

	// ListByProject lists a project's tasks within an organization
	ListByProject(projectID, orgID string) ([]models.Task, error)

	// ListForOrgUser lists tasks authored by or assigned to an org user
	ListForOrgUser(orgUserID, orgID string) ([]models.Task, error)

	// Update saves a modified task
	Update(task *models.Task) error

	// ListAssignmentsWithWhatsApp lists a task's assignments whose user
	// has a reachable WhatsApp number
	ListAssignmentsWithWhatsApp(taskID string) ([]models.TaskAssignment, error)

	// CreateChecklist creates a checklist item
	CreateChecklist(item *models.TaskChecklist) error

	// ListChecklists lists a task's checklist items within an organization
	ListChecklists(taskID, orgID string) ([]models.TaskChecklist, error)

	// FindChecklist finds a checklist item within an organization
	FindChecklist(id, orgID string) (*models.TaskChecklist, error)

	// UpdateChecklist saves a modified checklist item
	UpdateChecklist(item *models.TaskChecklist) error
}

// NotificationLogRepository defines the interface for the append-only
// notification audit log
type NotificationLogRepository interface {
	// Create appends one dispatch record
	Create(entry *models.NotificationLog) error

	// CreateMany appends a batch of dispatch records
	CreateMany(entries []models.NotificationLog) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// List lists all teams
	List() ([]models.Team, error)
}
