// Package storage wraps the MinIO client used for settings snapshots.
//
// Every persisted settings change can be mirrored as a JSON document into an
// S3-compatible bucket, so operators keep an off-database copy of the override
// tables. The Client interface only exposes the calls that path needs, which
// keeps core/storage/mocks small.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage
