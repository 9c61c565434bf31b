// Package store persists fetched wiki pages with a freshness window, so
// repeated runs inside the window never hit the network.
package store

import (
	"context"
	"time"
)

// PageCache is the retrieval-side cache contract. Get returns nil with
// no error on a miss or an expired entry.
type PageCache interface {
	GetPage(ctx context.Context, areaKey string) ([]byte, error)
	SetPage(ctx context.Context, areaKey string, body []byte, ttl time.Duration) error
	PurgeExpired(ctx context.Context) (int, error)
	Close() error
}
