package storage

import (
	"context"
)

// StorageClient defines the operations snapshot publishing needs
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file at the specified path
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListSnapshots lists snapshot index pages, newest first
	ListSnapshots(ctx context.Context, limit int) ([]string, error)
}
