package config

import (
	"flag"
	"os"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      token validity, minutes
//	-e string   environment name
//	-w int      rate limit window, minutes
//	-l int      general requests per window
//	-k int      register/login attempts per window
//	-x string   comma-separated trusted proxy CIDRs
//	-r string   Redis address for shared rate limiting
//	-n int      password hash workers
//
// Duration flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-e", "-w", "-l", "-k", "-x", "-r", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.Environment, "e", config.Environment, "environment name")

	rateLimitWindow := fs.Int("w", int(config.RateLimitWindow.Minutes()), "rate limit window (in minutes)")
	fs.IntVar(&config.RateLimitMax, "l", config.RateLimitMax, "requests per window")
	fs.IntVar(&config.AuthRateLimitMax, "k", config.AuthRateLimitMax, "register/login attempts per window")

	trustedProxies := fs.String("x", "", "comma-separated trusted proxy CIDRs")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.IntVar(&config.HashWorkers, "n", config.HashWorkers, "password hash workers")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Minute-granular flags only override when given, so finer values from
	// the environment or the JSON file survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "w":
			config.RateLimitWindow = time.Duration(*rateLimitWindow) * time.Minute
		case "x":
			config.TrustedProxies = splitList(*trustedProxies)
		}
	})
}
