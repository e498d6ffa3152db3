package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Schedule Cache Keys
const (
	ScheduleMonthKeyFmt = "schedule:%d:%02d" // year, month
	CompanyInfoKey      = "company:info"
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the package client. Tests inject a miniredis-backed
// client here.
func SetClient(c *redis.Client) {
	client = c
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change/logout)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Del(ctx, key)
}

// ============================================
// Schedule Cache Functions
// ============================================

// ScheduleMonthKey builds the cache key for a monthly schedule payload
func ScheduleMonthKey(year, month int) string {
	return fmt.Sprintf(ScheduleMonthKeyFmt, year, month)
}

// GetCachedScheduleMonth returns a cached monthly schedule if available
func GetCachedScheduleMonth(ctx context.Context, year, month int) ([]byte, bool) {
	return GetCached(ctx, ScheduleMonthKey(year, month))
}

// CacheScheduleMonth caches a monthly schedule payload. The schedule is
// fully derived from project data, so a long TTL is safe as long as
// project mutations invalidate schedule:* keys.
func CacheScheduleMonth(ctx context.Context, year, month int, data []byte) {
	SetCached(ctx, ScheduleMonthKey(year, month), data, 12*time.Hour)
}

// ============================================
// Generic Cache Functions
// ============================================

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// ============================================
// Cache Invalidation Functions
// ============================================

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// ============================================
// Entity-Based Cache Invalidators
// ============================================

// InvalidateProjectCaches clears all project-related caches
// Called when: CreateProject, UpdateProject, ArchiveProject, RestoreProject
func InvalidateProjectCaches(ctx context.Context) {
	InvalidatePattern(ctx, "projects:*")
	// The visit schedule is derived from project data
	InvalidatePattern(ctx, "schedule:*")
}

// InvalidateWorkLogCaches clears all work log-related caches
// Called when: CreateWorkLog, UpdateWorkLog, ArchiveWorkLog, RestoreWorkLog
func InvalidateWorkLogCaches(ctx context.Context) {
	InvalidatePattern(ctx, "worklogs:*")
	InvalidatePattern(ctx, "reports:*")
}

// InvalidatePersonnelCaches clears personnel and team caches
// Called when: CreatePersonnel, UpdatePersonnel, team membership changes
func InvalidatePersonnelCaches(ctx context.Context) {
	InvalidatePattern(ctx, "personnel:*")
	InvalidatePattern(ctx, "teams:*")
	// Team assignment affects which visits a team sees on the schedule
	InvalidatePattern(ctx, "schedule:*")
}

// InvalidateUserCaches clears all user-related caches
// Called when: CreateUser, UpdateUser, DeleteUser, ToggleStatus
func InvalidateUserCaches(ctx context.Context) {
	InvalidatePattern(ctx, "users:*")
}

// InvalidateClientCaches clears client account caches
// Called when: portal account changes, access code rotation
func InvalidateClientCaches(ctx context.Context) {
	InvalidatePattern(ctx, "clients:*")
}

// ============================================
// Pre-warm Cache Functions
// ============================================

// PreWarmCallback is a function that populates a cache key
type PreWarmCallback func(ctx context.Context) ([]byte, error)

// preWarmCallbacks stores functions to pre-warm cache on startup
var preWarmCallbacks = make(map[string]PreWarmCallback)

// RegisterPreWarm registers a callback to pre-warm a cache key
// This should be called during handler initialization
func RegisterPreWarm(key string, callback PreWarmCallback) {
	preWarmCallbacks[key] = callback
}

// PreWarmCache pre-warms registered cache keys on startup
// Runs in background, non-blocking
func PreWarmCache() {
	if client == nil {
		return
	}

	ctx := context.Background()

	for key, callback := range preWarmCallbacks {
		// Check if already cached (another instance may have done it)
		if _, ok := GetCached(ctx, key); ok {
			continue
		}

		// Call the pre-warm function
		data, err := callback(ctx)
		if err != nil {
			continue
		}

		// Cache with appropriate TTL based on key prefix
		ttl := 10 * time.Minute // default
		if len(key) > 9 && key[:9] == "schedule:" {
			ttl = 12 * time.Hour
		} else if key == CompanyInfoKey {
			ttl = 24 * time.Hour
		}

		SetCached(ctx, key, data, ttl)
	}
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// ============================================
// Background Pre-warm After Invalidation
// ============================================

// PreWarmKey pre-warms a specific cache key in the background
// Called after cache invalidation to ensure next request is fast
// fetcher should return the data to cache, ttl specifies how long to cache
// This is non-blocking - runs in a goroutine
func PreWarmKey(key string, fetcher func(ctx context.Context) ([]byte, error), ttl time.Duration) {
	if client == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data, err := fetcher(ctx)
		if err != nil {
			// Next request will just fetch from DB
			return
		}

		SetCached(ctx, key, data, ttl)
	}()
}
