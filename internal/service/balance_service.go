// Package service wires storage, cache, and the balance engine into the
// single entry point the outside world calls.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/splitledger/splitledger/internal/cache"
	"github.com/splitledger/splitledger/internal/engine"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/pkg/metrics"
)

// BalanceService computes balance summaries: it fetches one snapshot of the
// user's ledger data from the store, runs the engine over it, and memoizes
// the result keyed by (user, data version).
type BalanceService struct {
	store storage.Store
	cache cache.SummaryCache
	now   func() time.Time
}

// NewBalanceService creates a BalanceService with the given storage and
// cache backends.
func NewBalanceService(store storage.Store, c cache.SummaryCache) *BalanceService {
	return &BalanceService{store: store, cache: c, now: time.Now}
}

// Balances returns the balance summary for a user.
//
// Each dataset is fetched exactly once per call and passed to the engine as
// one snapshot; nothing is re-queried mid-computation. Concurrent calls for
// the same user each work on their own snapshot, last write to the cache
// wins. The only fatal error is an unknown user id
// (storage.ErrUserNotFound); malformed records degrade to skip-and-count
// inside the engine.
func (s *BalanceService) Balances(ctx context.Context, userID models.UserID) (*engine.Summary, error) {
	start := time.Now()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := s.cacheKey(ctx, userID)
	if key != "" {
		if summary, ok := s.cache.Get(ctx, key); ok {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			return summary, nil
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	}

	groups, err := s.store.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	groupIDs := make([]string, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}

	groupExpenses, err := s.store.GroupExpenses(ctx, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group expenses: %w", err)
	}
	personalExpenses, err := s.store.PersonalExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personal expenses: %w", err)
	}
	settlements, err := s.store.CompletedSettlementsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settlements: %w", err)
	}

	users, err := s.store.UsersByID(ctx, referencedUsers(userID, groups, groupExpenses, settlements))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	summary := engine.Compute(engine.Input{
		UserID:           userID,
		Now:              s.now(),
		Groups:           groups,
		GroupExpenses:    groupExpenses,
		PersonalExpenses: personalExpenses,
		Settlements:      settlements,
		Users:            users,
	})

	metrics.ComputationsTotal.Inc()
	metrics.ComputationDuration.Observe(time.Since(start).Seconds())
	if summary.SkippedRecords > 0 {
		metrics.SkippedRecords.Add(float64(summary.SkippedRecords))
		slog.Warn("balance computation skipped records",
			"user_id", userID, "username", user.Username, "skipped", summary.SkippedRecords)
	}

	if key != "" {
		s.cache.Set(ctx, key, summary)
	}
	return summary, nil
}

// cacheKey builds the memoization key. An empty key disables caching for
// this call; a data-version failure must not fail the computation.
func (s *BalanceService) cacheKey(ctx context.Context, userID models.UserID) string {
	version, err := s.store.DataVersion(ctx)
	if err != nil {
		slog.Warn("failed to get data version, skipping cache", "error", err)
		return ""
	}
	return fmt.Sprintf("balances:%s:%s", userID, version)
}

// referencedUsers collects every user id the summary may need display info
// for: the viewer, all group members, expense payers and split participants,
// and settlement parties.
func referencedUsers(viewer models.UserID, groups []models.Group, expenses []models.Expense, settlements []models.Settlement) []models.UserID {
	seen := map[models.UserID]struct{}{viewer: {}}
	add := func(id models.UserID) {
		if id != "" {
			seen[id] = struct{}{}
		}
	}
	for _, g := range groups {
		for _, m := range g.Members {
			add(m)
		}
	}
	for i := range expenses {
		add(expenses[i].PaidBy)
		for _, p := range expenses[i].SplitAmong {
			add(p)
		}
	}
	for i := range settlements {
		add(settlements[i].DebtorID)
		add(settlements[i].CreditorID)
	}

	ids := make([]models.UserID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids
}
