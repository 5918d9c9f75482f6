package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Store backends selectable with APPDECK_STORE_BACKEND.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend string // "file" | "redis" | "memory"
	DataFile     string // path of the JSON document (file backend)

	// Homepage import (both optional, empty = disabled)
	HomepageServicesFile  string
	HomepageBookmarksFile string
	ImportInterval        time.Duration // interval between homepage imports (default: 24h)
	HomepageWatch         bool          // also import when a homepage file changes

	EnableStart  bool          // expose POST /api/apps/{id}/start
	ProbeTimeout time.Duration // reachability probe timeout (default: 1s)
	SkipTLSProbe bool          // accept self-signed certificates when probing
	SortLocale   language.Tag  // collation used for name sort

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisKey              string        // key prefix for the document
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	ImportRateBurst  int // burst of the bulk import limiter
	ImportRatePerMin int // sustained imports per minute
}

// Option adjusts the configuration before backend settings are resolved.
type Option func(*Config)

// WithDataFile forces the file backend on path.
func WithDataFile(path string) Option {
	return func(cfg *Config) {
		cfg.StoreBackend = BackendFile
		cfg.DataFile = path
	}
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first; variables already set win. Unparsable
// values fall back to their defaults; only missing required Redis settings
// are reported as errors.
func Load(opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("APPDECK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: positiveDuration("APPDECK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("APPDECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("APPDECK_PRETTY_LOG", true),

		// Storage
		StoreBackend: parseBackend(getenv("APPDECK_STORE_BACKEND", BackendFile)),
		DataFile:     getenv("APPDECK_DATA_FILE", DefaultDataFile()),

		// Homepage import
		HomepageServicesFile:  getenv("APPDECK_HOMEPAGE_SERVICES_FILE", ""),
		HomepageBookmarksFile: getenv("APPDECK_HOMEPAGE_BOOKMARKS_FILE", ""),
		ImportInterval:        positiveDuration("APPDECK_IMPORT_INTERVAL", 24*time.Hour),
		HomepageWatch:         mustBool("APPDECK_HOMEPAGE_WATCH", false),

		// App actions
		EnableStart:  mustBool("APPDECK_ENABLE_START", false),
		ProbeTimeout: positiveDuration("APPDECK_PROBE_TIMEOUT", time.Second),
		SkipTLSProbe: mustBool("APPDECK_PROBE_SKIP_TLS", true),
		SortLocale:   parseLocale(getenv("APPDECK_SORT_LOCALE", "en")),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("APPDECK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("APPDECK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("APPDECK_TRUST_PROXY", false),

		ImportRateBurst:  getenvInt("APPDECK_IMPORT_RATE_BURST", 5),
		ImportRatePerMin: getenvInt("APPDECK_IMPORT_RATE_PER_MIN", 10),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.StoreBackend == BackendRedis {
		if err := loadRedis(cfg); err != nil {
			return nil, err
		}
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg, nil
}

// loadRedis fills the Redis settings. They are only read, and only
// required, when the Redis backend is selected.
func loadRedis(cfg *Config) error {
	addr, err := requireEnv("APPDECK_REDIS_ADDR")
	if err != nil {
		return err
	}
	cfg.RedisAddr = addr
	cfg.RedisUser = getenv("APPDECK_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("APPDECK_REDIS_PASSWORD_REQUIRED", false)
	cfg.RedisPassword = getenv("APPDECK_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("APPDECK_REDIS_DB", 0)
	cfg.RedisKey = getenv("APPDECK_REDIS_KEY", "appdeck:apps")
	cfg.RedisDT = mustDuration("APPDECK_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("APPDECK_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("APPDECK_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = positiveDuration("APPDECK_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = positiveDuration("APPDECK_REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("APPDECK_REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = positiveDuration("APPDECK_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = positiveDuration("APPDECK_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("APPDECK_REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		return errors.New("APPDECK_REDIS_PASSWORD is required when APPDECK_REDIS_PASSWORD_REQUIRED=true")
	}
	return nil
}

// DefaultDataFile is the document path used when APPDECK_DATA_FILE is unset.
func DefaultDataFile() string {
	return filepath.Join(xdg.DataHome, "appdeck", "apps.json")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// positiveDuration is mustDuration for settings where zero or a negative
// value is unusable (tickers, timeouts).
func positiveDuration(key string, def time.Duration) time.Duration {
	if d := mustDuration(key, def); d > 0 {
		return d
	}
	return def
}

func parseBackend(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case BackendRedis:
		return BackendRedis
	case BackendMemory:
		return BackendMemory
	default:
		return BackendFile
	}
}

func parseLocale(v string) language.Tag {
	tag, err := language.Parse(v)
	if err != nil {
		return language.English
	}
	return tag
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
