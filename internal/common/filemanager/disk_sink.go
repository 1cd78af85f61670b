package filemanager

import (
	"context"
	"path/filepath"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// DiskSink writes captured files below a single output root.
// Paths handed to it are slash separated and relative to that root.
type DiskSink struct {
	root        string
	fileManager *FileManager
	logger      zerolog.Logger
}

// NewDiskSink creates a sink rooted at root, creating the directory if needed
func NewDiskSink(root string, logger zerolog.Logger) (*DiskSink, error) {
	fm := NewFileManager(logger)
	if err := fm.EnsureDir(root); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to prepare output directory")
	}

	return &DiskSink{
		root:        root,
		fileManager: fm,
		logger:      logger.With().Str("component", "DiskSink").Logger(),
	}, nil
}

// Root returns the output directory
func (s *DiskSink) Root() string {
	return s.root
}

// Resolve maps a relative path to its location on disk.
// Absolute paths and paths climbing out of the root are rejected.
func (s *DiskSink) Resolve(relPath string) (string, error) {
	local := filepath.FromSlash(relPath)
	if relPath == "" || !filepath.IsLocal(local) {
		return "", errorwrapper.WrapError(errorwrapper.ErrPathEscape, relPath)
	}
	return filepath.Join(s.root, local), nil
}

// Write stores data at relPath and returns the full path written
func (s *DiskSink) Write(ctx context.Context, relPath string, data []byte) (string, error) {
	fullPath, err := s.Resolve(relPath)
	if err != nil {
		return "", err
	}

	opts := DefaultFileWriteOptions()
	opts.Context = ctx
	if err := s.fileManager.WriteFile(fullPath, data, opts); err != nil {
		return "", err
	}

	s.logger.Debug().Str("path", relPath).Int("bytes", len(data)).Msg("Stored file")
	return fullPath, nil
}
