package files

import (
	"context"
	"fmt"

	"github.com/mpavlovs/parkgate/internal/client/models"
	"github.com/mpavlovs/parkgate/internal/common"
	"github.com/mpavlovs/parkgate/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds a repository to db, which may be a *sql.DB or a
// transaction handle.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, f *models.StoredFile) error {

	query := ` INSERT INTO stored_files (id, name, type, size, data, uploaded_at)
			values (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				type = excluded.type,
				size = excluded.size,
				data = excluded.data,
				uploaded_at = excluded.uploaded_at
	`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.Name, f.Type, f.Size, f.Data, f.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert file: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.StoredFile, error) {

	query := `select id, name, type, size, data, uploaded_at from stored_files order by uploaded_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error selecting files: %w", err)
	}
	defer rows.Close()

	var result []*models.StoredFile

	for rows.Next() {
		item := &models.StoredFile{}
		err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.Size, &item.Data, &item.UploadedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {

	query := `delete from stored_files where id=?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("file %s: %w", id, common.ErrorNotFound)
	}

	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {

	query := `delete from stored_files`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear files: %w", err)
	}

	return nil
}
