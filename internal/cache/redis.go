package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gametrack-backend/internal/config"
	"gametrack-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Dashboard cache key
const DashboardStatsKey = "dashboard:stats"

// Sign-in roster keys: signin:<unix-ms>:<email>
const signInKeyFmt = "signin:%d:%s"
const signInPattern = "signin:*"

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays
// nil and every cache call degrades to a no-op.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when Init failed).
func GetClient() *redis.Client {
	return client
}

// GetCachedDashboard returns the cached dashboard payload if present.
func GetCachedDashboard(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardStatsKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheDashboard caches the dashboard payload for 30 seconds.
func CacheDashboard(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, DashboardStatsKey, data, 30*time.Second)
}

// InvalidateDashboard drops the cached dashboard after a state change.
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardStatsKey)
}

// RecordSignIn appends one roster entry. The timestamp lives in the
// key so entries sort chronologically without a secondary index.
func RecordSignIn(ctx context.Context, entry models.SignInEntry) error {
	if client == nil {
		return fmt.Errorf("redis unavailable")
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(signInKeyFmt, entry.Timestamp, entry.Email)
	return client.Set(ctx, key, data, 0).Err()
}

// ListSignIns returns roster entries, newest first.
func ListSignIns(ctx context.Context) ([]models.SignInEntry, error) {
	if client == nil {
		return nil, fmt.Errorf("redis unavailable")
	}

	var keys []string
	iter := client.Scan(ctx, 0, signInPattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []models.SignInEntry{}, nil
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.SignInEntry, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var e models.SignInEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}
