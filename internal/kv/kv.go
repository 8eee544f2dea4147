// Package kv defines the durable key-value blob substrate behind the quote
// stores. Values are opaque strings (JSON-serialized collections); one key per
// product line. Implementations must make every Set durable before returning.
package kv

import (
	"context"

	"bima/pkg/platform/sentinel"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = sentinel.ErrNotFound

// Store is the blob substrate contract. Writes are full-value replacements;
// there is no partial update and no cross-key atomicity.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
