package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"invoicer/internal/logger"
)

// FileDeliverer writes documents into a local directory.
type FileDeliverer struct {
	Dir string
	log zerolog.Logger
}

// NewFileDeliverer returns a FileDeliverer writing to dir, which is created
// on first delivery.
func NewFileDeliverer(dir string) *FileDeliverer {
	return &FileDeliverer{
		Dir: dir,
		log: logger.WithComponent("delivery"),
	}
}

// Deliver writes data to Dir/name. The file appears complete or not at all.
func (d *FileDeliverer) Deliver(ctx context.Context, name string, data []byte) (string, error) {
	const op = "FileDeliverer.Deliver"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: failed to create output directory: %w", op, err)
	}

	tmp, err := os.CreateTemp(d.Dir, ".invoice-*")
	if err != nil {
		return "", fmt.Errorf("%s: failed to create temp file: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%s: failed to write document: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%s: failed to close document: %w", op, err)
	}

	path := filepath.Join(d.Dir, name)
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("%s: failed to set permissions: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%s: failed to move document into place: %w", op, err)
	}

	d.log.Info().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("Document written")

	return path, nil
}
