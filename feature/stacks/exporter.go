package stacks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"stack-manager/core/reconcile"
	"stack-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// SnapshotObject is the object key the settings snapshot is written to.
const SnapshotObject = "settings/stacks.json"

// Exporter writes settings snapshots to object storage.
type Exporter struct {
	client storage.Client
	bucket string
}

// NewExporter creates an Exporter writing into bucket.
func NewExporter(client storage.Client, bucket string) *Exporter {
	return &Exporter{client: client, bucket: bucket}
}

// Export uploads the current settings as a JSON document.
func (e *Exporter) Export(ctx context.Context, settings reconcile.Settings) error {
	data, err := json.MarshalIndent(DocumentFrom(settings), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = e.client.PutObject(ctx, e.bucket, SnapshotObject, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}

// Fetch downloads the last exported snapshot.
func (e *Exporter) Fetch(ctx context.Context) (Document, error) {
	obj, err := e.client.GetObject(ctx, e.bucket, SnapshotObject, minio.GetObjectOptions{})
	if err != nil {
		return Document{}, fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer obj.Close()

	var doc Document
	if err := json.NewDecoder(obj).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return doc, nil
}
