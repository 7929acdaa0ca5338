// Package storage provides an abstraction layer for the remote content
// bucket.
//
// It wraps the MinIO Go client to provide a narrow read-side interface:
// checking bucket access, streaming objects, and statting them. This
// abstraction supports both AWS S3 and self-hosted MinIO instances, and
// makes remote interactions easy to mock in unit tests (see
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the content bucket.
//   - GetObject: Retrieves catalog manifests and segment bytes as a stream.
//   - StatObject: Reads object metadata without the body.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "sounds")
package storage
