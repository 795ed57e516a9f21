package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/dbx"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// PostgresRepository implements message storage over a dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {

	query := `
		INSERT INTO messages (from_user_id, to_user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		message.FromUserID, message.ToUserID, message.Content).
		Scan(&message.ID, &message.IsRead, &message.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	return message, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := `
		SELECT id, from_user_id, to_user_id, content, is_read, created_at
		FROM messages
		WHERE id = $1
	`
	message := &models.Message{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&message.ID, &message.FromUserID, &message.ToUserID,
		&message.Content, &message.IsRead, &message.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	return message, nil
}

func (r *PostgresRepository) ListByRecipient(ctx context.Context, userID int64) ([]*models.Message, error) {
	query := `
		SELECT id, from_user_id, to_user_id, content, is_read, created_at
		FROM messages
		WHERE to_user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.FromUserID, &m.ToUserID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id int64) error {
	query := `UPDATE messages SET is_read = TRUE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
