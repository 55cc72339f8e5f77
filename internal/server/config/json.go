package config

import (
	"encoding/json"
	"os"

	"github.com/R3gret/ITPM-Backend/internal/flagx"
	"github.com/R3gret/ITPM-Backend/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted. Absent
// keys leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	Environment                 *string         `json:"environment"`
	RateLimitWindow             *timex.Duration `json:"rate_limit_window"`
	RateLimitMax                *int            `json:"rate_limit_max"`
	AuthRateLimitMax            *int            `json:"auth_rate_limit_max"`
	TrustedProxies              []string        `json:"trusted_proxies"`
	RedisAddr                   *string         `json:"redis_addr"`
	HashWorkers                 *int            `json:"hash_workers"`
}

// parseJson loads configuration values from the file named by -c / -config.
// Without the flag nothing is loaded. An unreadable or invalid file panics,
// since the process cannot start with a configuration it cannot read.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Environment, c.Environment)
	setString(&config.RedisAddr, c.RedisAddr)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	setInt(&config.RateLimitMax, c.RateLimitMax)
	setInt(&config.AuthRateLimitMax, c.AuthRateLimitMax)
	setInt(&config.HashWorkers, c.HashWorkers)
	if c.TrustedProxies != nil {
		config.TrustedProxies = c.TrustedProxies
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
