package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the corresponding environment variable is unset
const (
	DefaultPort            = "8080"
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 30 * time.Minute
)

// managedHostSuffixes are database hosts known to require encrypted
// connections. A DATABASE_URL pointing at one of them gets sslmode=require
// unless the URL or DATABASE_SSL says otherwise.
var managedHostSuffixes = []string{
	"render.com",
	"neon.tech",
	"amazonaws.com",
}

// Config holds the resolved service configuration. It is built once at
// startup and handed to the components that need it; nothing reads the
// environment after Load returns.
type Config struct {
	Port            string
	DatabaseURL     string // connection string with sslmode resolved
	CORSOrigin      string // empty allows all origins
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads the service configuration from the environment
func Load() (*Config, error) {
	rawURL := os.Getenv("DATABASE_URL")
	if rawURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	maxOpen, err := envIntOr("DB_MAX_OPEN_CONNS", DefaultMaxOpenConns)
	if err != nil {
		return nil, err
	}
	maxIdle, err := envIntOr("DB_MAX_IDLE_CONNS", DefaultMaxIdleConns)
	if err != nil {
		return nil, err
	}
	lifetimeSeconds, err := envIntOr("DB_CONN_MAX_LIFETIME", int(DefaultConnMaxLifetime/time.Second))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            envOr("PORT", DefaultPort),
		DatabaseURL:     ResolveDSN(rawURL, os.Getenv("DATABASE_SSL")),
		CORSOrigin:      os.Getenv("CORS_ORIGIN"),
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: time.Duration(lifetimeSeconds) * time.Second,
	}, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// ResolveDSN normalizes a Postgres connection string so that it always
// carries an explicit sslmode. An sslmode already present in the DSN wins;
// otherwise a truthy sslFlag forces require; otherwise managed database
// hosts get require and everything else gets disable.
func ResolveDSN(raw, sslFlag string) string {
	if hasSSLMode(raw) {
		return raw
	}

	mode := "disable"
	if sslEnabled(sslFlag) || isManagedHost(hostOf(raw)) {
		mode = "require"
	}

	if strings.Contains(raw, "://") {
		sep := "?"
		if strings.Contains(raw, "?") {
			sep = "&"
		}
		return raw + sep + "sslmode=" + mode
	}

	// key=value connection string
	return strings.TrimSpace(raw) + " sslmode=" + mode
}

func sslEnabled(flag string) bool {
	switch strings.ToLower(flag) {
	case "1", "true", "require":
		return true
	}
	return false
}

// hasSSLMode reports whether the connection string already carries an sslmode
// key, in either URL query or key=value form. "sslmode=" appearing inside
// another key or inside credentials does not count.
func hasSSLMode(raw string) bool {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return false
		}
		_, ok := u.Query()["sslmode"]
		return ok
	}
	for _, part := range strings.Fields(raw) {
		if strings.HasPrefix(part, "sslmode=") {
			return true
		}
	}
	return false
}

// hostOf extracts the host from either a URL-style or key=value-style
// connection string. Returns "" when no host can be determined.
func hostOf(raw string) string {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	for _, part := range strings.Fields(raw) {
		if strings.HasPrefix(part, "host=") {
			return strings.TrimPrefix(part, "host=")
		}
	}
	return ""
}

func isManagedHost(host string) bool {
	if host == "" {
		return false
	}
	for _, suffix := range managedHostSuffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}
