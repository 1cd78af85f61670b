package snapshot

import (
	"context"

	"github.com/aleister1102/pagecapture/internal/common/filemanager"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/rs/zerolog"
)

// FileSource reads saved markup from disk and treats the target as its page URL
type FileSource struct {
	path        string
	fileManager *filemanager.FileManager
	logger      zerolog.Logger
}

// NewFileSource creates a new file source
func NewFileSource(path string, logger zerolog.Logger) *FileSource {
	return &FileSource{
		path:        path,
		fileManager: filemanager.NewFileManager(logger),
		logger:      logger.With().Str("component", "FileSource").Logger(),
	}
}

func (fs *FileSource) Snapshot(ctx context.Context, target string) (*models.DocumentSnapshot, error) {
	opts := filemanager.DefaultFileReadOptions()
	opts.Context = ctx

	data, err := fs.fileManager.ReadFile(fs.path, opts)
	if err != nil {
		return nil, models.NewExtractionFailure(target, err)
	}

	fs.logger.Debug().Str("path", fs.path).Str("url", target).Msg("Loaded snapshot from file")
	return &models.DocumentSnapshot{URL: target, HTML: string(data)}, nil
}

func (fs *FileSource) Close() error {
	return nil
}
