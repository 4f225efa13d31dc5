package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Backend BackendConfig `yaml:"backend"`
	Feed    FeedConfig    `yaml:"feed"`
	Board   BoardConfig   `yaml:"board"`
	Mood    MoodConfig    `yaml:"mood"`
	Selfie  SelfieConfig  `yaml:"selfie"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// BackendConfig points at the BrainDump AI backend.
type BackendConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
	UserID  string        `yaml:"userId"`
}

// FeedConfig controls caching of backend reads.
type FeedConfig struct {
	RecentTTL time.Duration `yaml:"recentTtl"`
	HealthTTL time.Duration `yaml:"healthTtl"`
	Redis     RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// BoardConfig seeds the anonymous sharing board.
type BoardConfig struct {
	Seeds []BoardSeed `yaml:"seeds"`
}

// BoardSeed is a starter post.
type BoardSeed struct {
	Text    string `yaml:"text"`
	MeToo   int    `yaml:"metoo"`
	Support int    `yaml:"support"`
}

// MoodConfig seeds the mood history shown on the dashboard.
type MoodConfig struct {
	Seeds []MoodSeed `yaml:"seeds"`
}

// MoodSeed is a starter mood entry.
type MoodSeed struct {
	Date      string `yaml:"date"`
	Emotion   string `yaml:"emotion"`
	Intensity int    `yaml:"intensity"`
}

// SelfieConfig selects the camera capability and the mock analysis delay.
type SelfieConfig struct {
	Camera        string        `yaml:"camera"`
	AnalysisDelay time.Duration `yaml:"analysisDelay"`
}

const (
	// CameraNone disables selfie capture.
	CameraNone = "none"
	// CameraStatic replays a placeholder frame.
	CameraStatic = "static"
)

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("APP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("BRAINDUMP_API_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("BRAINDUMP_API_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Timeout = parsed
		}
	}
	if v := os.Getenv("BRAINDUMP_USER_ID"); v != "" {
		cfg.Backend.UserID = v
	}
	if v := os.Getenv("FEED_RECENT_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Feed.RecentTTL = parsed
		}
	}
	if v := os.Getenv("FEED_HEALTH_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Feed.HealthTTL = parsed
		}
	}
	if v := os.Getenv("FEED_REDIS_ENABLED"); v != "" {
		cfg.Feed.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("FEED_REDIS_ADDR"); v != "" {
		cfg.Feed.Redis.Addr = v
	}
	if v := os.Getenv("SELFIE_CAMERA"); v != "" {
		cfg.Selfie.Camera = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SELFIE_ANALYSIS_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Selfie.AnalysisDelay = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 45 * time.Second,
			CORSOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
			UserID:  "anonymous",
		},
		Feed: FeedConfig{
			RecentTTL: 2 * time.Minute,
			HealthTTL: 5 * time.Minute,
			Redis: RedisConfig{
				Enabled: false,
				Prefix:  "braindump",
			},
		},
		Board: BoardConfig{
			Seeds: []BoardSeed{
				{Text: "Just bombed my midterm and my laptop crashed with my project on it", MeToo: 12, Support: 8},
				{Text: "Interview tomorrow and I haven't slept in 30 hours", MeToo: 5, Support: 15},
				{Text: "Parents asking about grades while I'm just trying to survive", MeToo: 23, Support: 7},
			},
		},
		Selfie: SelfieConfig{
			Camera:        CameraStatic,
			AnalysisDelay: 2 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("backend.baseUrl cannot be empty")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be positive")
	}
	if strings.TrimSpace(c.Backend.UserID) == "" {
		return errors.New("backend.userId cannot be empty")
	}
	if c.Feed.RecentTTL < 0 || c.Feed.HealthTTL < 0 {
		return errors.New("feed ttl values cannot be negative")
	}
	if c.Feed.Redis.Enabled && strings.TrimSpace(c.Feed.Redis.Addr) == "" {
		return errors.New("feed.redis.addr cannot be empty when redis cache is enabled")
	}
	switch c.Selfie.Camera {
	case CameraNone, CameraStatic:
	default:
		return fmt.Errorf("selfie.camera must be %q or %q", CameraNone, CameraStatic)
	}
	if c.Selfie.AnalysisDelay < 0 {
		return errors.New("selfie.analysisDelay cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
