package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mpavlovs/parkgate/internal/client/filecache"
)

// mimeByExtension maps the file extensions the cache accepts to MIME types.
func mimeByExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return ""
	}
}

func (a *App) FilesCmd(ctx context.Context) {
	files := a.cache.Files()
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No staged files")
		return
	}
	for _, f := range files {
		added := time.UnixMilli(f.UploadedAt).Format("2006-01-02 15:04")
		fmt.Fprintf(a.out, "%s  %-30s %-16s %6d bytes  %s\n", f.ID, f.Name, f.Type, f.Size, added)
	}
}

func (a *App) AddFileCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: addfile <path> [path...]")
		return
	}

	batch := make([]filecache.Input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.out, "error reading %s: %v\n", path, err)
			return
		}
		batch = append(batch, filecache.Input{
			Name: filepath.Base(path),
			Type: mimeByExtension(path),
			Data: data,
		})
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	if err := a.cache.AddFiles(ctx, batch); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Staged %d file(s)\n", len(batch))
}

func (a *App) RemoveFileCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rmfile <id>")
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	if err := a.cache.RemoveFile(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, "Failed to remove file")
		return
	}
	fmt.Fprintln(a.out, "Removed")
}

func (a *App) ClearFilesCmd(ctx context.Context) {
	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	if err := a.cache.ClearFiles(ctx); err != nil {
		fmt.Fprintln(a.out, "Failed to clear files")
		return
	}
	fmt.Fprintln(a.out, "Cleared")
}
