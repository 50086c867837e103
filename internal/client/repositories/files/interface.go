package files

import (
	"context"

	"github.com/mpavlovs/parkgate/internal/client/models"
)

// Repository describes persistence operations for StoredFile records.
// Implementations are typically backed by the local SQLite database.
type Repository interface {
	// Save inserts or replaces a file record.
	Save(ctx context.Context, f *models.StoredFile) error

	// GetAll returns every stored record, oldest first.
	GetAll(ctx context.Context) ([]*models.StoredFile, error)

	// Delete removes the record with the given id; deleting an unknown id
	// is an error.
	Delete(ctx context.Context, id string) error

	// Clear removes every record.
	Clear(ctx context.Context) error
}
