// Package files provides the client-side persistence layer for staged
// upload files.
//
// # Overview
//
// The package defines a Repository interface for saving, listing, deleting,
// and clearing StoredFile records, plus a SQLite-backed implementation
// (SQLiteRepository) over a dbx.DBTX handle (*sql.DB or *sql.Tx). Binding
// the repository to a transaction is how the file cache makes a batch add
// all-or-nothing.
//
// Typical Usage
//
//	repo := files.NewSQLiteRepository(db)
//	_ = repo.Save(ctx, f)
//	all, _ := repo.GetAll(ctx)
//	_ = repo.Delete(ctx, f.ID)
//	_ = repo.Clear(ctx)
//
// See also: internal/client/models.StoredFile for field semantics.
package files
