package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/projectpulse/project-management-api/internal/database"
	"github.com/projectpulse/project-management-api/internal/models"
	"github.com/projectpulse/project-management-api/internal/repository"
)

type fakeDispatch struct {
	To   string
	Text string
}

type fakeDispatcher struct {
	calls []fakeDispatch
	err   error
}

func (f *fakeDispatcher) SendWhatsApp(ctx context.Context, toNumber, text string) error {
	f.calls = append(f.calls, fakeDispatch{To: toNumber, Text: text})
	return f.err
}

type taskServiceTestEnv struct {
	db         *gorm.DB
	service    *TaskService
	dispatcher *fakeDispatcher

	org      models.Organization
	project  models.Project
	author   models.OrganizationUser
	assignee models.OrganizationUser
	offline  models.OrganizationUser
}

// setupTaskServiceTestEnv seeds one organization with a project, an author,
// an assignee reachable over WhatsApp, and an assignee without a number.
func setupTaskServiceTestEnv(t *testing.T) *taskServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	dispatcher := &fakeDispatcher{}
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewNotificationLogRepository(db)
	service := NewTaskService(taskRepo, logRepo, dispatcher, zap.NewNop())

	env := &taskServiceTestEnv{
		db:         db,
		service:    service,
		dispatcher: dispatcher,
	}

	env.org = models.Organization{Name: "Acme Inc", Subdomain: "acme"}
	require.NoError(t, db.Create(&env.org).Error)

	env.project = models.Project{Name: "Launch", OrgID: env.org.ID}
	require.NoError(t, db.Create(&env.project).Error)

	env.author = env.seedMember(t, "author@example.com", "15550000001", nil)
	whatsApp := "+15551234567"
	env.assignee = env.seedMember(t, "assignee@example.com", "15550000002", &whatsApp)
	env.offline = env.seedMember(t, "offline@example.com", "15550000003", nil)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *taskServiceTestEnv) seedMember(t *testing.T, email, phone string, whatsApp *string) models.OrganizationUser {
	t.Helper()

	user := models.User{
		FirstName:      "Test",
		LastName:       "User",
		Email:          email,
		Phone:          phone,
		WhatsAppNumber: whatsApp,
	}
	require.NoError(t, env.db.Create(&user).Error)

	orgUser := models.OrganizationUser{UserID: user.ID, OrgID: env.org.ID}
	require.NoError(t, env.db.Create(&orgUser).Error)
	return orgUser
}

func (env *taskServiceTestEnv) validInput() CreateTaskInput {
	return CreateTaskInput{
		Title:        "Ship the release",
		Status:       models.TaskStatusToDo,
		Priority:     models.TaskPriorityHigh,
		ProjectID:    env.project.ID,
		AuthorUserID: env.author.ID,
		AssignedIDs:  []string{env.assignee.ID, env.offline.ID},
	}
}

func TestTaskService_Create(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.service.Create(context.Background(), env.org.ID, env.validInput())
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Len(t, task.TaskAssignments, 2)

	// Only the assignee with a WhatsApp number is dispatched to, with the
	// leading "+" stripped.
	require.Len(t, env.dispatcher.calls, 1)
	require.Equal(t, "15551234567", env.dispatcher.calls[0].To)
	require.Equal(t, "Task Ship the release has been assigned to you", env.dispatcher.calls[0].Text)

	var logs []models.NotificationLog
	require.NoError(t, env.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, env.assignee.ID, logs[0].ReceiverID)
	require.Equal(t, models.NotificationLogChannelWhatsApp, logs[0].Channel)
	require.NotNil(t, logs[0].ToPhone)
	require.Equal(t, "15551234567", *logs[0].ToPhone)
	require.Equal(t, env.org.ID, logs[0].OrgID)
}

func TestTaskService_Create_MissingFields(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	input := env.validInput()
	input.Title = ""
	_, err := env.service.Create(context.Background(), env.org.ID, input)
	require.ErrorIs(t, err, ErrMissingTaskFields)

	input = env.validInput()
	input.AssignedIDs = nil
	_, err = env.service.Create(context.Background(), env.org.ID, input)
	require.ErrorIs(t, err, ErrMissingTaskFields)

	var taskCount int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&taskCount).Error)
	require.EqualValues(t, 0, taskCount)
	require.Empty(t, env.dispatcher.calls)
}

func TestTaskService_Create_DispatchFailureDoesNotFailTask(t *testing.T) {
	env := setupTaskServiceTestEnv(t)
	env.dispatcher.err = errors.New("provider unavailable")

	task, err := env.service.Create(context.Background(), env.org.ID, env.validInput())
	require.NoError(t, err)

	var taskCount int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&taskCount).Error)
	require.EqualValues(t, 1, taskCount)

	// The failed attempt is still recorded.
	var logCount int64
	require.NoError(t, env.db.Model(&models.NotificationLog{}).Count(&logCount).Error)
	require.EqualValues(t, 1, logCount)

	_, err = env.service.Get(task.ID, env.org.ID)
	require.NoError(t, err)
}

func TestTaskService_Create_NoReachableAssignees(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	input := env.validInput()
	input.AssignedIDs = []string{env.offline.ID}
	_, err := env.service.Create(context.Background(), env.org.ID, input)
	require.NoError(t, err)

	require.Empty(t, env.dispatcher.calls)

	var logCount int64
	require.NoError(t, env.db.Model(&models.NotificationLog{}).Count(&logCount).Error)
	require.EqualValues(t, 0, logCount)
}

func TestTaskService_Create_WithAttachment(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	input := env.validInput()
	input.AttachmentURL = "https://files.example.com/spec.pdf"
	task, err := env.service.Create(context.Background(), env.org.ID, input)
	require.NoError(t, err)
	require.Len(t, task.Attachments, 1)
	require.Equal(t, "https://files.example.com/spec.pdf", task.Attachments[0].FileURL)
}

func TestTaskService_Get_WrongOrg(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.service.Create(context.Background(), env.org.ID, env.validInput())
	require.NoError(t, err)

	otherOrg := models.Organization{Name: "Other", Subdomain: "other"}
	require.NoError(t, env.db.Create(&otherOrg).Error)

	_, err = env.service.Get(task.ID, otherOrg.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.service.Create(context.Background(), env.org.ID, env.validInput())
	require.NoError(t, err)

	updated, err := env.service.UpdateStatus(task.ID, env.org.ID, models.TaskStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusCompleted, updated.Status)

	var stored models.Task
	require.NoError(t, env.db.First(&stored, "id = ?", task.ID).Error)
	require.Equal(t, models.TaskStatusCompleted, stored.Status)
}

func TestTaskService_ListForOrgUser(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.service.Create(context.Background(), env.org.ID, env.validInput())
	require.NoError(t, err)

	byAssignment, err := env.service.ListForOrgUser(env.assignee.ID, env.org.ID)
	require.NoError(t, err)
	require.Len(t, byAssignment, 1)

	byAuthorship, err := env.service.ListForOrgUser(env.author.ID, env.org.ID)
	require.NoError(t, err)
	require.Len(t, byAuthorship, 1)
}

func TestTaskService_Checklist(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.service.Create(context.Background(), env.org.ID, env.validInput())
	require.NoError(t, err)

	item, err := env.service.CreateChecklist(task.ID, env.org.ID, env.author.ID, "Write the changelog")
	require.NoError(t, err)
	require.False(t, item.Completed)

	_, err = env.service.CreateChecklist(task.ID, env.org.ID, env.author.ID, "   ")
	require.ErrorIs(t, err, ErrChecklistTitleRequired)

	_, err = env.service.CreateChecklist("missing-task", env.org.ID, env.author.ID, "Anything")
	require.ErrorIs(t, err, ErrTaskNotFound)

	completed := true
	updated, err := env.service.UpdateChecklist(item.ID, env.org.ID, ChecklistUpdateInput{Completed: &completed})
	require.NoError(t, err)
	require.True(t, updated.Completed)

	items, err := env.service.ListChecklists(task.ID, env.org.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
