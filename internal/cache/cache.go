// Package cache memoizes computed balance summaries.
//
// A summary is a pure function of the store's state, so a cached copy keyed
// by (user, data version) stays valid until the data version changes. Cache
// failures are never fatal: a miss just means the summary gets recomputed.
package cache

import (
	"context"

	"github.com/splitledger/splitledger/internal/engine"
)

// SummaryCache stores balance summaries by key.
type SummaryCache interface {
	// Get retrieves a cached summary. Returns (nil, false) on any miss or
	// deserialization error.
	Get(ctx context.Context, key string) (*engine.Summary, bool)

	// Set stores a summary. Write failures are swallowed (logged by the
	// implementation); caching is best-effort.
	Set(ctx context.Context, key string, summary *engine.Summary)
}
