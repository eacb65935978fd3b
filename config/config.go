package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetch     FetchConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Engine    EngineConfig
	Batch     BatchConfig
	Webhook   WebhookConfig
}

// EngineConfig controls the multi-engine racing dispatcher.
type EngineConfig struct {
	// EnableMultiEngine toggles the multi-engine dispatcher.
	EnableMultiEngine bool // default: true

	// EscalationDelays is the staged start delay for each engine tier.
	EscalationDelays []time.Duration // default: [0s, 2s, 5s]

	// HTTPTimeout is the deadline for the pure HTTP engine.
	HTTPTimeout time.Duration // default: 10s

	// MemoryTTL is how long a host remembers the engine that last won.
	MemoryTTL time.Duration // default: 24h
}

// CacheConfig controls the fetched-page cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached pages.
	MaxEntries int // default: 500

	// TTL is the age after which cached pages are evicted.
	TTL time.Duration // default: 1h
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// DefaultProxy is the default proxy URL for all requests.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// FetchConfig controls how pages are fetched from the site.
type FetchConfig struct {
	// BaseURL is the site the page path templates are joined to.
	BaseURL string // default: "https://www.pro-football-reference.com"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout time.Duration // default: 30s

	// MaxTimeout is the maximum allowed timeout from the client.
	MaxTimeout time.Duration // default: 120s

	// WaitTimeout bounds the wait for a page's anchor selector.
	WaitTimeout time.Duration // default: 10s

	// BlockedResourceTypes lists resource types the browser never loads.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string

	// BlockAds drops requests to known ad and tracking hosts.
	BlockAds bool // default: true

	// RequestsPerMinute paces outgoing fetches to the site. The site bans
	// clients that go above twenty a minute.
	RequestsPerMinute float64 // default: 18
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting of the API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// BatchConfig controls the batch worker pool.
type BatchConfig struct {
	// Workers is the number of jobs run at once.
	Workers int // default: 2

	// Retention is how long finished batches stay queryable.
	Retention time.Duration // default: 1h
}

// WebhookConfig controls batch completion callbacks.
type WebhookConfig struct {
	// Secret signs webhook bodies; empty disables signing.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("GRIDIRON_HOST", "0.0.0.0"),
			Port: envIntOr("GRIDIRON_PORT", 8080),
			Mode: envOr("GRIDIRON_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("GRIDIRON_HEADLESS", true),
			MaxPages:     envIntOr("GRIDIRON_MAX_PAGES", 4),
			DefaultProxy: os.Getenv("GRIDIRON_PROXY"),
			NoSandbox:    envBoolOr("GRIDIRON_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("GRIDIRON_BROWSER_BIN"),
		},
		Fetch: FetchConfig{
			BaseURL:        envOr("GRIDIRON_BASE_URL", "https://www.pro-football-reference.com"),
			DefaultTimeout: envDurationOr("GRIDIRON_DEFAULT_TIMEOUT", 30*time.Second),
			MaxTimeout:     envDurationOr("GRIDIRON_MAX_TIMEOUT", 120*time.Second),
			WaitTimeout:    envDurationOr("GRIDIRON_WAIT_TIMEOUT", 10*time.Second),
			BlockedResourceTypes: envSliceOr("GRIDIRON_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
			BlockAds:          envBoolOr("GRIDIRON_BLOCK_ADS", true),
			RequestsPerMinute: envFloatOr("GRIDIRON_FETCH_RPM", 18),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("GRIDIRON_AUTH_ENABLED", false),
			APIKeys: envSliceOr("GRIDIRON_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("GRIDIRON_RATE_RPS", 5.0),
			Burst:             envIntOr("GRIDIRON_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("GRIDIRON_CACHE_MAX_ENTRIES", 500),
			TTL:        envDurationOr("GRIDIRON_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  envOr("GRIDIRON_LOG_LEVEL", "info"),
			Format: envOr("GRIDIRON_LOG_FORMAT", "json"),
		},
		Engine: EngineConfig{
			EnableMultiEngine: envBoolOr("GRIDIRON_MULTI_ENGINE", true),
			EscalationDelays:  envDurationSliceOr("GRIDIRON_ESCALATION_DELAYS", []time.Duration{0, 2 * time.Second, 5 * time.Second}),
			HTTPTimeout:       envDurationOr("GRIDIRON_HTTP_TIMEOUT", 10*time.Second),
			MemoryTTL:         envDurationOr("GRIDIRON_ENGINE_MEMORY_TTL", 24*time.Hour),
		},
		Batch: BatchConfig{
			Workers:   envIntOr("GRIDIRON_BATCH_WORKERS", 2),
			Retention: envDurationOr("GRIDIRON_BATCH_RETENTION", time.Hour),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("GRIDIRON_WEBHOOK_SECRET"),
		},
	}
}

func envDurationSliceOr(key string, fallback []time.Duration) []time.Duration {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]time.Duration, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				if d, err := time.ParseDuration(trimmed); err == nil {
					result = append(result, d)
				}
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
