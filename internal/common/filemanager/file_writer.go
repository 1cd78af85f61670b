package filemanager

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// FileWriter stores files through a temporary sibling and a rename
type FileWriter struct {
	logger zerolog.Logger
}

// NewFileWriter creates a new FileWriter instance
func NewFileWriter(logger zerolog.Logger) *FileWriter {
	return &FileWriter{
		logger: logger.With().Str("component", "FileWriter").Logger(),
	}
}

// WriteFile writes data next to path and renames it into place.
// A write cancelled through opts.Context leaves the previous file, if any, untouched.
func (fw *FileWriter) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return errorwrapper.WrapError(err, "file write cancelled")
	}

	perm := opts.Permissions
	if perm == 0 {
		perm = 0644
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create temporary file for: "+path)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				fw.logger.Warn().Err(rmErr).Str("path", tmpName).Msg("Failed to remove temporary file")
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errorwrapper.WrapError(err, "failed to write file: "+path)
	}
	if err := tmp.Close(); err != nil {
		return errorwrapper.WrapError(err, "failed to close file: "+path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errorwrapper.WrapError(err, "failed to set permissions on: "+path)
	}

	if err := ctx.Err(); err != nil {
		return errorwrapper.WrapError(err, "file write cancelled")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errorwrapper.WrapError(err, "failed to move file into place: "+path)
	}
	committed = true

	fw.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written")
	return nil
}
