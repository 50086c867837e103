package filecache

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mpavlovs/parkgate/internal/client/models"
	"github.com/mpavlovs/parkgate/internal/client/repositories/files"
	"github.com/mpavlovs/parkgate/internal/dbx"
	"github.com/mpavlovs/parkgate/internal/logging"
)

const (
	// MaxFiles is the hard cap on staged documents.
	MaxFiles = 10
	// MaxFileSize is the per-file size cap in bytes (2 MiB).
	MaxFileSize = 2 * 1024 * 1024
)

var allowedTypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
	"image/jpg":       {},
}

// ErrOnlyAllowedTypes is returned when a batch contains a file of a
// disallowed MIME type.
var ErrOnlyAllowedTypes = errors.New("Only PDF, PNG, and JPEG files are allowed")

// Input is one user-selected file before it enters the cache.
type Input struct {
	Name string
	Type string // MIME type
	Data []byte
}

// File is a cached document plus its runtime-only preview path.
type File struct {
	models.StoredFile

	// previewPath is set once a preview has been materialized; empty
	// otherwise. Never persisted.
	previewPath string
}

// Cache owns the staged-document set: in-memory list, durable sqlite
// records, and temp-file previews for images.
//
// All methods are safe for concurrent use.
type Cache struct {
	db         *sql.DB
	repo       files.Repository
	log        logging.Logger
	previewDir string

	mu    sync.Mutex
	files []*File
}

// New builds a cache over db and creates a private directory for image
// previews. Call Close to drop the previews when done.
func New(db *sql.DB, log logging.Logger) (*Cache, error) {
	dir, err := os.MkdirTemp("", "parkgate-previews-")
	if err != nil {
		return nil, fmt.Errorf("failed to create preview dir: %w", err)
	}
	return &Cache{
		db:         db,
		repo:       files.NewSQLiteRepository(db),
		log:        log,
		previewDir: dir,
	}, nil
}

func validate(in Input) error {
	if _, ok := allowedTypes[in.Type]; !ok {
		return ErrOnlyAllowedTypes
	}
	if int64(len(in.Data)) > MaxFileSize {
		return fmt.Errorf("File size must be less than 2MB. Current size: %.2fMB",
			float64(len(in.Data))/1024/1024)
	}
	return nil
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func newFileID(now time.Time) string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteByte(suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), b.String())
}

// AddFiles validates and stores a batch of selections. The batch is
// all-or-nothing: a count overflow or any single invalid file rejects the
// whole call and nothing is persisted.
func (c *Cache) AddFiles(ctx context.Context, batch []Input) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.files)+len(batch) > MaxFiles {
		return fmt.Errorf("Maximum %d files allowed. You can add %d more file(s).",
			MaxFiles, MaxFiles-len(c.files))
	}

	for _, in := range batch {
		if err := validate(in); err != nil {
			return err
		}
	}

	added := make([]*File, 0, len(batch))
	now := time.Now()
	for _, in := range batch {
		added = append(added, &File{StoredFile: models.StoredFile{
			ID:         newFileID(now),
			Name:       in.Name,
			Type:       in.Type,
			Size:       int64(len(in.Data)),
			Data:       base64.StdEncoding.EncodeToString(in.Data),
			UploadedAt: now.UnixMilli(),
		}})
	}

	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := files.NewSQLiteRepository(tx)
		for _, f := range added {
			if err := repo.Save(ctx, &f.StoredFile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save files: %w", err)
	}

	c.files = append(c.files, added...)
	return nil
}

// RemoveFile deletes one document. The durable delete runs first; if it
// fails the in-memory entry and its preview are left untouched.
func (c *Cache) RemoveFile(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	for i, f := range c.files {
		if f.ID == id {
			c.revokePreview(ctx, f)
			c.files = append(c.files[:i], c.files[i+1:]...)
			break
		}
	}
	return nil
}

// ClearFiles revokes every preview, empties the durable store and resets
// in-memory state.
func (c *Cache) ClearFiles(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.files {
		c.revokePreview(ctx, f)
	}

	if err := c.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear files: %w", err)
	}

	c.files = nil
	return nil
}

// ReloadFiles rebuilds in-memory state from the durable store, dropping any
// previews materialized for the previous state.
func (c *Cache) ReloadFiles(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load files: %w", err)
	}

	for _, f := range c.files {
		c.revokePreview(ctx, f)
	}

	c.files = make([]*File, 0, len(stored))
	for _, s := range stored {
		c.files = append(c.files, &File{StoredFile: *s})
	}
	return nil
}

// Files returns a snapshot of the cached documents, oldest first.
func (c *Cache) Files() []models.StoredFile {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.StoredFile, 0, len(c.files))
	for _, f := range c.files {
		out = append(out, f.StoredFile)
	}
	return out
}

// Preview returns the path of a temp file holding the decoded image,
// materializing it on first request. Only image types have previews.
func (c *Cache) Preview(ctx context.Context, id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.files {
		if f.ID != id {
			continue
		}
		if !strings.HasPrefix(f.Type, "image/") {
			return "", fmt.Errorf("no preview for type %s", f.Type)
		}
		if f.previewPath != "" {
			return f.previewPath, nil
		}

		data, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			return "", fmt.Errorf("failed to decode file data: %w", err)
		}
		path := filepath.Join(c.previewDir, f.ID+previewExt(f.Type))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return "", fmt.Errorf("failed to write preview: %w", err)
		}
		f.previewPath = path
		return path, nil
	}

	return "", fmt.Errorf("unknown file id: %s", id)
}

func previewExt(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}

func (c *Cache) revokePreview(ctx context.Context, f *File) {
	if f.previewPath == "" {
		return
	}
	if err := os.Remove(f.previewPath); err != nil && !os.IsNotExist(err) {
		if c.log != nil {
			c.log.Warn(ctx, "failed to remove preview", "path", f.previewPath, "error", err)
		}
	}
	f.previewPath = ""
}

// Close revokes all previews and removes the preview directory. The
// durable store is left intact.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.files {
		f.previewPath = ""
	}
	return os.RemoveAll(c.previewDir)
}
