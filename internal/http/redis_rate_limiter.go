package httpx

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	redis "github.com/redis/go-redis/v9"
)

// fixedWindowScript bumps the counter and stamps the window expiry in
// one atomic step, and hands back both the count and the remaining
// window so no second round-trip is needed.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

type redisRateLimiter struct {
	client  *redis.Client
	logger  *slog.Logger
	prefix  string
	timeout time.Duration
}

// NewRedisRateLimiter constructs a Redis backed rate limiter so limits
// hold across multiple API replicas.
func NewRedisRateLimiter(addr, password string, db int, logger *slog.Logger) (RateLimiter, error) {
	opts := &redis.Options{Addr: addr, Password: password, DB: db}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &redisRateLimiter{
		client:  client,
		logger:  logger,
		prefix:  "projectmanager:ratelimit:",
		timeout: 250 * time.Millisecond,
	}, nil
}

func (rl *redisRateLimiter) Allow(key string, limit int, window time.Duration) rateDecision {
	if limit <= 0 {
		return rateDecision{allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	// The decision fails open: an unreachable redis must not take the
	// API down with it.
	res, err := fixedWindowScript.Run(ctx, rl.client, []string{rl.prefix + key}, window.Milliseconds()).Result()
	if err != nil {
		rl.logRedisError("fixed_window", err)
		return rateDecision{allowed: true}
	}
	values, ok := res.([]interface{})
	if !ok || len(values) != 2 {
		rl.logRedisError("fixed_window", fmt.Errorf("unexpected script reply %T", res))
		return rateDecision{allowed: true}
	}
	counter, _ := values[0].(int64)
	ttlMillis, _ := values[1].(int64)
	if ttlMillis <= 0 {
		ttlMillis = window.Milliseconds()
	}
	return rateDecision{
		allowed:   int(counter) <= limit,
		count:     int(counter),
		windowEnd: time.Now().Add(time.Duration(ttlMillis) * time.Millisecond),
	}
}

func (rl *redisRateLimiter) Close() {
	if rl.client != nil {
		_ = rl.client.Close()
	}
}

func (rl *redisRateLimiter) logRedisError(op string, err error) {
	if rl.logger == nil {
		return
	}
	rl.logger.Error("redis rate limiter error", "op", op, "error", err)
}
