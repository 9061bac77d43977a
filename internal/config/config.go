// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The vacating status set is the one piece
// of business policy carried in configuration: it names the booking
// statuses under which a room is considered free for new claims even
// though the booking record still exists. It is supplied explicitly,
// never inferred from data.
type Config struct {
	Env              string          // application environment (e.g. "dev", "prod")
	Port             string          // HTTP port to listen on
	DBUser           string          // database username
	DBPass           string          // database password (optional)
	DBHost           string          // database host address
	DBPort           string          // database port number
	DBName           string          // database name
	JWTSecret        string          // secret used to sign JWTs
	AccessTTLMin     int             // access token time-to-live in minutes
	BcryptCost       int             // bcrypt cost for password hashing
	LoginAttempts    int             // failed logins before an account is blocked
	VacatingStatuses map[string]bool // status names that release a room
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		AccessTTLMin:     intOr("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:       intOr("BCRYPT_COST", 10),
		LoginAttempts:    intOr("LOGIN_ATTEMPT_LIMIT", 3),
		VacatingStatuses: ParseStatusSet(strOr("VACATING_STATUSES", "CANCELLED")),
	}
}

// ParseStatusSet turns a comma separated list of status names into a
// lookup set. Names are trimmed and upper-cased; empty entries are
// dropped.
func ParseStatusSet(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, p := range strings.Split(csv, ",") {
		if name := strings.ToUpper(strings.TrimSpace(p)); name != "" {
			set[name] = true
		}
	}
	return set
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// strOr retrieves an optional environment variable with a default.
func strOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr converts an optional environment variable to an integer,
// falling back to def when unset. An unparsable value is fatal.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
