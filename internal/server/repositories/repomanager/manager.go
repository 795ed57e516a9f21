package repomanager

import (
	"context"
	"database/sql"

	"github.com/mvasiljevs/taskdesk/internal/dbx"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/evidences"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/messages"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/sessions"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/tasks"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX
// (either the pooled *sql.DB or a *sql.Tx inside dbx.WithTx) and exposes
// a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Messages(db dbx.DBTX) messages.Repository
	Evidences(db dbx.DBTX) evidences.Repository
}
