package files

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mpavlovs/parkgate/internal/client/models"
	"github.com/mpavlovs/parkgate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE stored_files (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  size INTEGER NOT NULL,
  data TEXT NOT NULL,
  uploaded_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSave_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	f := &models.StoredFile{
		ID:         "f1",
		Name:       "permit.pdf",
		Type:       "application/pdf",
		Size:       3,
		Data:       "AQID",
		UploadedAt: 1000,
	}
	require.NoError(t, r.Save(ctx, f))

	var name, typ, data string
	var size, uploadedAt int64
	err := db.QueryRow(`SELECT name, type, size, data, uploaded_at FROM stored_files WHERE id=?`, "f1").
		Scan(&name, &typ, &size, &data, &uploadedAt)
	require.NoError(t, err)
	assert.Equal(t, "permit.pdf", name)
	assert.Equal(t, "application/pdf", typ)
	assert.Equal(t, int64(3), size)
	assert.Equal(t, "AQID", data)
	assert.Equal(t, int64(1000), uploadedAt)

	f2 := &models.StoredFile{
		ID:         "f1",
		Name:       "permit-v2.pdf",
		Type:       "application/pdf",
		Size:       5,
		Data:       "AQIDBAU=",
		UploadedAt: 2000,
	}
	require.NoError(t, r.Save(ctx, f2))

	err = db.QueryRow(`SELECT name, type, size, data, uploaded_at FROM stored_files WHERE id=?`, "f1").
		Scan(&name, &typ, &size, &data, &uploadedAt)
	require.NoError(t, err)
	assert.Equal(t, "permit-v2.pdf", name)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, "AQIDBAU=", data)
	assert.Equal(t, int64(2000), uploadedAt)
}

func TestGetAll_OldestFirst(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO stored_files(id, name, type, size, data, uploaded_at) VALUES
	  ('b', 'second.png', 'image/png', 1, 'AA==', 2000),
	  ('a', 'first.pdf', 'application/pdf', 1, 'AA==', 1000),
	  ('c', 'third.jpg', 'image/jpeg', 1, 'AA==', 3000)
	`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestGetAll_Empty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete_SuccessAndNotFound(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO stored_files(id, name, type, size, data, uploaded_at)
	                   VALUES ('x', 'x.pdf', 'application/pdf', 1, 'AA==', 1000)`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)

	require.NoError(t, r.Delete(ctx, "x"))

	err = r.Delete(ctx, "x")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClear_RemovesEverything(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO stored_files(id, name, type, size, data, uploaded_at) VALUES
	  ('a', 'a.pdf', 'application/pdf', 1, 'AA==', 1000),
	  ('b', 'b.png', 'image/png', 1, 'AA==', 2000)
	`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	require.NoError(t, r.Clear(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM stored_files`).Scan(&n))
	assert.Equal(t, 0, n)
}
