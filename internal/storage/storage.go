// Package storage defines the object storage gateway used for photo uploads
// and document downloads. The MinIO implementation works with any
// S3-compatible provider; swap implementations by changing the concrete type
// injected at startup.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrObjectNotFound is returned by Stat when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes an object that exists in the backing store.
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// Storage is the gateway to the object store. Bytes never pass through the
// application server: clients upload and download directly using the
// time-limited URLs issued here.
type Storage interface {
	// PresignedPutURL issues a time-limited URL allowing a direct client
	// upload to the given key.
	PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PresignedGetURL issues a time-limited download URL for the given key.
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Stat reports size and content type of the object at key, or
	// ErrObjectNotFound when it does not exist.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
