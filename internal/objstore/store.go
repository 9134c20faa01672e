// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package objstore accesses the requester-pays archive bucket. Every
// operation carries the requester-pays acknowledgement and runs under the
// uniform retry policy: exponential backoff doubling per attempt, capped
// at three attempts, identical for metadata, ranged, full, and listing
// requests.
package objstore

import "context"

// Store is the object-store surface the indexer and fetcher need. The S3
// implementation is the only production one; tests substitute in-memory
// fakes.
type Store interface {
	// Size returns an object's byte size via a metadata-only request.
	Size(ctx context.Context, key string) (int64, error)

	// GetRange returns length bytes starting at offset.
	GetRange(ctx context.Context, key string, offset, length int64) ([]byte, error)

	// Get returns the whole object.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns every key under prefix, exhausting pagination.
	List(ctx context.Context, prefix string) ([]string, error)
}
