package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/dbx"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	evidencesrepo "github.com/mvasiljevs/taskdesk/internal/server/repositories/evidences"
	messagesrepo "github.com/mvasiljevs/taskdesk/internal/server/repositories/messages"
	sessionsrepo "github.com/mvasiljevs/taskdesk/internal/server/repositories/sessions"
	tasksrepo "github.com/mvasiljevs/taskdesk/internal/server/repositories/tasks"
	usersrepo "github.com/mvasiljevs/taskdesk/internal/server/repositories/users"
)

// -------- test fakes --------

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	usersrepo.Repository

	byUsername map[string]*models.User
	byID       map[int64]*models.User
	getErr     error

	createOut *models.User
	createErr error

	blockCalls map[int64]bool
	blockErr   error

	listOut []*models.User
	listErr error

	lastSignedIn []int64
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdateLastSignedIn(ctx context.Context, id int64) error {
	f.lastSignedIn = append(f.lastSignedIn, id)
	return nil
}

func (f *fakeUsersRepo) SetBlockStatus(ctx context.Context, id int64, blocked bool) error {
	if f.blockErr != nil {
		return f.blockErr
	}
	if f.blockCalls == nil {
		f.blockCalls = map[int64]bool{}
	}
	f.blockCalls[id] = blocked
	return nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

type createdSession struct {
	userID    int64
	token     string
	expiresAt time.Time
}

type fakeSessionsRepo struct {
	sessionsrepo.Repository

	created   []createdSession
	createErr error

	findOut *models.Session
	findErr error

	deleted   []string
	deleteErr error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, createdSession{userID: userID, token: token, expiresAt: expiresAt})
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findOut == nil {
		return nil, common.ErrorNotFound
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeTasksRepo struct {
	tasksrepo.Repository

	createErr error

	getOut *models.Task
	getErr error

	updated   []*models.Task
	updateErr error

	listAllOut        []*models.Task
	listByAssigneeOut []*models.Task
	listErr           error
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	task.ID = 1
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrorNotFound
	}
	return f.getOut, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, task)
	return nil
}

func (f *fakeTasksRepo) ListAll(ctx context.Context) ([]*models.Task, error) {
	return f.listAllOut, f.listErr
}

func (f *fakeTasksRepo) ListByAssignee(ctx context.Context, userID int64) ([]*models.Task, error) {
	return f.listByAssigneeOut, f.listErr
}

type fakeMessagesRepo struct {
	messagesrepo.Repository

	createErr error

	getOut *models.Message
	getErr error

	listOut []*models.Message
	listErr error

	markedRead []int64
	markErr    error
}

func (f *fakeMessagesRepo) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	m.ID = 1
	return m, nil
}

func (f *fakeMessagesRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrorNotFound
	}
	return f.getOut, nil
}

func (f *fakeMessagesRepo) ListByRecipient(ctx context.Context, userID int64) ([]*models.Message, error) {
	return f.listOut, f.listErr
}

func (f *fakeMessagesRepo) MarkRead(ctx context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedRead = append(f.markedRead, id)
	return nil
}

type fakeEvidencesRepo struct {
	evidencesrepo.Repository

	createErr error

	listOut []*models.Evidence
	listErr error
}

func (f *fakeEvidencesRepo) Create(ctx context.Context, e *models.Evidence) (*models.Evidence, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	e.ID = 1
	return e, nil
}

func (f *fakeEvidencesRepo) ListByTask(ctx context.Context, taskID int64) ([]*models.Evidence, error) {
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
	t *fakeTasksRepo
	m *fakeMessagesRepo
	e *fakeEvidencesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository   { return m.s }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository         { return m.t }
func (m *fakeRepoManager) Messages(db dbx.DBTX) messagesrepo.Repository   { return m.m }
func (m *fakeRepoManager) Evidences(db dbx.DBTX) evidencesrepo.Repository { return m.e }

// -------- helpers --------

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func adminIdentity() *Identity {
	return &Identity{ID: 100, Username: "boss", Role: models.RoleAdmin}
}

func userIdentity(id int64) *Identity {
	return &Identity{ID: id, Username: "worker", Role: models.RoleUser}
}
