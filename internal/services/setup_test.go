package services

import (
	"testing"
	"time"

	"clientboard/internal/models"
	"clientboard/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack onto an in-memory SQLite database.
// The cache client is nil, which every service treats as "no cache".
type testEnv struct {
	db        *gorm.DB
	clients   ClientService
	tasks     TaskService
	templates TemplateService
	links     ApprovalLinkService
	public    PublicActionService

	historyRepo repository.HistoryRepository

	operator models.User
	other    models.User
	client   models.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.ClientTask{},
		&models.ClientTaskHistoryEntry{},
		&models.PublicApprovalLink{},
		&models.TaskTemplate{},
	))

	historyRepo := repository.NewHistoryRepository(db)
	taskRepo := repository.NewTaskRepository(db, historyRepo)
	clientRepo := repository.NewClientRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	env := &testEnv{
		db:          db,
		historyRepo: historyRepo,
		clients:     NewClientService(clientRepo),
		tasks:       NewTaskService(taskRepo, historyRepo, clientRepo, linkRepo, templateRepo, nil, time.Minute),
		templates:   NewTemplateService(templateRepo, clientRepo),
		links:       NewApprovalLinkService(linkRepo, clientRepo, taskRepo, "http://localhost:8080", 7*24*time.Hour),
		public:      NewPublicActionService(linkRepo, taskRepo, nil),
	}

	env.operator = models.User{Name: "Operator", Email: "operator@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&env.operator).Error)
	env.other = models.User{Name: "Someone Else", Email: "other@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&env.other).Error)

	env.client = models.Client{UserID: env.operator.ID, Name: "Acme"}
	require.NoError(t, db.Create(&env.client).Error)

	return env
}

func (env *testEnv) createTask(t *testing.T, title, period string, publicEnabled bool) *models.ClientTask {
	t.Helper()
	task, err := env.tasks.CreateTask(env.operator.ID, TaskCreate{
		ClientID:              env.client.ID,
		Title:                 title,
		PublicApprovalEnabled: publicEnabled,
		MonthYearReference:    period,
	})
	require.NoError(t, err)
	return task
}

// issueLink mints a usable link for the default client and the given period.
func (env *testEnv) issueLink(t *testing.T, period string) *models.PublicApprovalLink {
	t.Helper()
	link, _, err := env.links.IssueLink(env.operator.ID, env.client.ID, period)
	require.NoError(t, err)
	return link
}

// insertExpiredLink bypasses the service so the stored row is already past
// its expiry while the active flag still says true.
func (env *testEnv) insertExpiredLink(t *testing.T, uniqueID, period string) *models.PublicApprovalLink {
	t.Helper()
	link := &models.PublicApprovalLink{
		UniqueID:           uniqueID,
		ClientID:           env.client.ID,
		UserID:             env.operator.ID,
		MonthYearReference: period,
		ExpiresAt:          time.Now().Add(-time.Hour),
		IsActive:           true,
	}
	require.NoError(t, env.db.Create(link).Error)
	return link
}

func (env *testEnv) historyFor(t *testing.T, taskID uint) []models.ClientTaskHistoryEntry {
	t.Helper()
	entries, err := env.historyRepo.ListByTask(taskID, false)
	require.NoError(t, err)
	return entries
}

func (env *testEnv) reloadTask(t *testing.T, taskID uint) *models.ClientTask {
	t.Helper()
	var task models.ClientTask
	require.NoError(t, env.db.First(&task, taskID).Error)
	return &task
}

func (env *testEnv) reloadLink(t *testing.T, linkID uint) *models.PublicApprovalLink {
	t.Helper()
	var link models.PublicApprovalLink
	require.NoError(t, env.db.First(&link, linkID).Error)
	return &link
}

func ptr[T any](v T) *T { return &v }
