// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface. The dataset
// package reads marketplace CSV tables from a bucket prefix through it and the
// export package uploads built feature tables. Both AWS S3 and self-hosted
// MinIO are supported.
//
// The interface keeps storage interactions mockable (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "olist")
package storage
