package filemanager

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// FileReader handles file reading operations
type FileReader struct {
	logger zerolog.Logger
}

// NewFileReader creates a new FileReader instance
func NewFileReader(logger zerolog.Logger) *FileReader {
	return &FileReader{
		logger: logger.With().Str("component", "FileReader").Logger(),
	}
}

// ReadFile reads a whole file, honoring the size limit and context in opts
func (fr *FileReader) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to open file: %s", path))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fr.logger.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	var reader io.Reader = file
	if opts.MaxSize > 0 {
		reader = io.LimitReader(file, opts.MaxSize)
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(reader)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errorwrapper.WrapError(ctx.Err(), "file read operation cancelled")
	case res := <-done:
		if res.err != nil {
			return nil, errorwrapper.WrapError(res.err, fmt.Sprintf("failed to read file: %s", path))
		}
		fr.logger.Debug().Str("path", path).Int("bytes", len(res.data)).Msg("File read successfully")
		return res.data, nil
	}
}
