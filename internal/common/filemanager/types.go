package filemanager

import (
	"context"
	"io/fs"
	"time"
)

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // 0 means no limit
	Timeout time.Duration
	Context context.Context
}

// FileWriteOptions configures file writing behavior
type FileWriteOptions struct {
	CreateDirs  bool
	Permissions fs.FileMode
	Context     context.Context
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{
		MaxSize: 50 * 1024 * 1024,
		Timeout: 30 * time.Second,
		Context: context.Background(),
	}
}

// DefaultFileWriteOptions returns default file writing options
func DefaultFileWriteOptions() FileWriteOptions {
	return FileWriteOptions{
		CreateDirs:  true,
		Permissions: 0644,
		Context:     context.Background(),
	}
}
