package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"taxdash/internal/logger"
)

// GCSClient publishes snapshots to a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.GetGlobalLogger().WithComponent("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile stores a file in the bucket
func (g *GCSClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	g.log.Debugf("storing file to GCS: gs://%s/%s", g.bucket, filePath)

	obj := g.client.Bucket(g.bucket).Object(filePath)

	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(filePath)
	writer.CacheControl = "public, max-age=300"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	return nil
}

// GetFile retrieves a file from the bucket
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return fileData, nil
}

// ListSnapshots lists snapshot index pages from the bucket, newest first
func (g *GCSClient) ListSnapshots(ctx context.Context, limit int) ([]string, error) {
	bucket := g.client.Bucket(g.bucket)

	query := &storage.Query{
		Prefix: "snapshots/",
	}

	it := bucket.Objects(ctx, query)

	var snapshotPaths []string

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if strings.HasSuffix(attrs.Name, "/index.html") {
			snapshotPaths = append(snapshotPaths, attrs.Name)
		}
	}

	sortNewestFirst(snapshotPaths)

	if limit > 0 && limit < len(snapshotPaths) {
		snapshotPaths = snapshotPaths[:limit]
	}

	return snapshotPaths, nil
}
