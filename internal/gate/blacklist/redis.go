package blacklist

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"estategate/pkg/platform/sentinel"
	pkgstrings "estategate/pkg/platform/strings"
)

// DefaultRedisKey is the set holding blacklisted codes.
const DefaultRedisKey = "gate:blacklist"

// RedisRegistry checks membership against a Redis set so several gate
// consoles can share one configured list.
type RedisRegistry struct {
	client redis.UniversalClient
	key    string
}

// RedisOption configures a RedisRegistry.
type RedisOption func(*RedisRegistry)

// WithKey overrides the Redis key of the set.
func WithKey(key string) RedisOption {
	return func(r *RedisRegistry) {
		if key != "" {
			r.key = key
		}
	}
}

// NewRedisRegistry creates a registry reading from client.
func NewRedisRegistry(client redis.UniversalClient, opts ...RedisOption) *RedisRegistry {
	r := &RedisRegistry{client: client, key: DefaultRedisKey}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed replaces the set contents with codes. It runs once at start, which
// keeps the "configured at process start" lifecycle of the static registry.
func (r *RedisRegistry) Seed(ctx context.Context, codes []string) error {
	cleaned := pkgstrings.DedupeAndTrim(codes)
	members := make([]any, 0, len(cleaned))
	for _, c := range cleaned {
		members = append(members, c)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(members) > 0 {
			pipe.SAdd(ctx, r.key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed blacklist: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (r *RedisRegistry) IsBlacklisted(ctx context.Context, code string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key, code).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w: %w", sentinel.ErrUnavailable, err)
	}
	return ok, nil
}

// List returns the codes in the set in lexical order.
func (r *RedisRegistry) List(ctx context.Context) ([]string, error) {
	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("list blacklist: %w: %w", sentinel.ErrUnavailable, err)
	}
	sort.Strings(members)
	return members, nil
}
