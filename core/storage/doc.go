// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the archive needs:
// checking and creating the bucket, listing existing objects and uploading files.
// Both AWS S3 and self-hosted MinIO instances are supported.
//
// The interface makes storage easy to mock in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
