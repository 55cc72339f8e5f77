package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays values from environment variables:
//
//	PORT                  HTTP port (bound on all interfaces)
//	DATABASE_URL          PostgreSQL DSN
//	JWT_SECRET            token signing secret
//	JWT_EXPIRES_IN        token lifetime, e.g. "1h"
//	APP_ENV               environment name
//	RATE_LIMIT_WINDOW     window length, e.g. "15m"
//	RATE_LIMIT_MAX        general ceiling per window
//	AUTH_RATE_LIMIT_MAX   register/login ceiling per window
//	TRUSTED_PROXIES       comma-separated CIDRs or addresses
//	REDIS_ADDR            host:port of the shared rate-limit store
//	HASH_WORKERS          concurrent password hash computations
//
// Malformed numbers or durations panic, like a malformed config file.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	lookupString("DATABASE_URL", &config.DatabaseDSN)
	lookupString("JWT_SECRET", &config.SecretKey)
	lookupString("APP_ENV", &config.Environment)
	lookupString("REDIS_ADDR", &config.RedisAddr)
	lookupDuration("JWT_EXPIRES_IN", &config.AccessTokenValidityDuration)
	lookupDuration("RATE_LIMIT_WINDOW", &config.RateLimitWindow)
	lookupInt("RATE_LIMIT_MAX", &config.RateLimitMax)
	lookupInt("AUTH_RATE_LIMIT_MAX", &config.AuthRateLimitMax)
	lookupInt("HASH_WORKERS", &config.HashWorkers)
	if v, ok := os.LookupEnv("TRUSTED_PROXIES"); ok {
		config.TrustedProxies = splitList(v)
	}
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func lookupInt(name string, dst *int) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = n
}

func lookupDuration(name string, dst *time.Duration) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
