// Package ratelimit caps attempts per client key inside a fixed time window.
//
// Two Limiter implementations are provided: MemoryLimiter keeps counters in
// process memory, RedisLimiter keeps them in Redis so several server
// instances share one budget. Counters are never durable: a window's count
// disappears once the window has elapsed.
//
// Client keys come from a ClientKeyFunc. Forwarded-for headers are only
// honoured when the direct peer is a configured trusted proxy.
package ratelimit
