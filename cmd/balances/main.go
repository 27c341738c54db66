// Command balances computes and prints a user's balance summary.
//
// It wires the SQLite store, an optional Redis summary cache, and the
// balance service, then writes the summary as JSON to stdout.
//
//	balances -user <user-id> [-db ./data/ledger.db] [-redis localhost:6379]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/splitledger/splitledger/internal/cache"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
	"github.com/splitledger/splitledger/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	var (
		dbPath    = flag.String("db", getEnv("DB_PATH", "./data/ledger.db"), "path to the SQLite database")
		redisAddr = flag.String("redis", getEnv("REDIS_ADDR", ""), "Redis address for summary caching (empty disables Redis)")
		cacheTTL  = flag.Duration("cache-ttl", time.Hour, "TTL for cached summaries")
		userID    = flag.String("user", "", "user id to compute balances for")
	)
	flag.Parse()

	logging.Setup()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "balances: -user is required")
		flag.Usage()
		os.Exit(2)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", *dbPath)

	var summaryCache cache.SummaryCache = cache.NewMemoryCache()
	if *redisAddr != "" {
		redisCache := cache.NewRedisCache(*redisAddr, *cacheTTL)
		defer redisCache.Close()
		summaryCache = redisCache
		slog.Info("summary cache backed by redis", "addr", *redisAddr, "ttl", *cacheTTL)
	}

	svc := service.NewBalanceService(store, summaryCache)
	summary, err := svc.Balances(context.Background(), models.UserID(*userID))
	if err != nil {
		slog.Error("failed to compute balances", "user_id", *userID, "error", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		slog.Error("failed to encode summary", "error", err)
		os.Exit(1)
	}
}
