package filemanager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// FileManager reads configuration and saved pages, and writes captured output
type FileManager struct {
	logger zerolog.Logger
	reader *FileReader
	writer *FileWriter
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	componentLogger := logger.With().Str("component", "FileManager").Logger()

	return &FileManager{
		logger: componentLogger,
		reader: NewFileReader(componentLogger),
		writer: NewFileWriter(componentLogger),
	}
}

// Exists reports whether anything is present at path
func (fm *FileManager) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// checkReadable rejects directories and files above opts.MaxSize
func (fm *FileManager) checkReadable(path string, opts FileReadOptions) error {
	stat, err := os.Stat(path)
	if err != nil {
		return errorwrapper.WrapError(err, fmt.Sprintf("cannot stat %s", path))
	}
	if stat.IsDir() {
		return errorwrapper.NewValidationError("path", path, "is a directory, not a file")
	}
	if opts.MaxSize > 0 && stat.Size() > opts.MaxSize {
		return errorwrapper.NewValidationError("file_size", stat.Size(), fmt.Sprintf("exceeds maximum size of %d bytes", opts.MaxSize))
	}
	return nil
}

// ReadFile reads a whole regular file with the given options
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	if err := fm.checkReadable(path, opts); err != nil {
		return nil, err
	}
	return fm.reader.ReadFile(path, opts)
}

// EnsureDir creates dir and its parents. An existing non-directory is an error.
func (fm *FileManager) EnsureDir(dir string) error {
	stat, err := os.Stat(dir)
	switch {
	case err == nil && stat.IsDir():
		return nil
	case err == nil:
		return errorwrapper.NewValidationError("path", dir, "exists but is not a directory")
	case !os.IsNotExist(err):
		return errorwrapper.WrapError(err, "failed to check directory: "+dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create directory: "+dir)
	}
	fm.logger.Debug().Str("path", dir).Msg("Created directory")
	return nil
}

// WriteFile replaces path with data, creating parent directories when opts asks for it
func (fm *FileManager) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	if opts.CreateDirs {
		if err := fm.EnsureDir(filepath.Dir(path)); err != nil {
			return errorwrapper.WrapError(err, "failed to create parent directories for: "+path)
		}
	}
	return fm.writer.WriteFile(path, data, opts)
}
