package evidences

import (
	"context"
	"fmt"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/dbx"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// PostgresRepository implements evidence-metadata storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, evidence *models.Evidence) (*models.Evidence, error) {

	query := `
		INSERT INTO evidences (task_id, user_id, storage_key, file_name, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		evidence.TaskID, evidence.UserID, evidence.StorageKey,
		evidence.FileName, evidence.FileType, evidence.FileSize).
		Scan(&evidence.ID, &evidence.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	return evidence, nil
}

func (r *PostgresRepository) ListByTask(ctx context.Context, taskID int64) ([]*models.Evidence, error) {
	query := `
		SELECT id, task_id, user_id, storage_key, file_name, file_type, file_size, created_at
		FROM evidences
		WHERE task_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	defer rows.Close()

	var result []*models.Evidence
	for rows.Next() {
		var e models.Evidence
		if err := rows.Scan(&e.ID, &e.TaskID, &e.UserID, &e.StorageKey,
			&e.FileName, &e.FileType, &e.FileSize, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	return result, nil
}
