package ratelimit

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// incrWindow increments KEYS[1] and gives it a TTL of ARGV[1] milliseconds
// when it has none, in one atomic step. A counter left without a TTL is
// repaired on its next hit.
var incrWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter keeps fixed-window counters in Redis so that every server
// instance shares the same budget per key. The window starts with the first
// hit of a key and ends when its TTL expires.
type RedisLimiter struct {
	redis  *redis.Client
	config Config
	prefix string
}

func NewRedisLimiter(client *redis.Client, config Config, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{redis: client, config: config, prefix: prefix}
}

// Allow increments the key's counter. On a Redis failure the attempt is
// reported as not allowed together with the error; the caller decides
// whether to fail open.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := incrWindow.Run(ctx, l.redis, []string{redisKey}, l.config.Window.Milliseconds()).Int64()
	if err != nil {
		return Decision{Limit: l.config.Max}, fmt.Errorf("redis error: %w", err)
	}

	return decide(int(count), l.config.Max), nil
}
