package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Crawler  CrawlerConfig
	Browser  BrowserConfig
	Database DatabaseConfig
	Queue    QueueConfig
	Archive  ArchiveConfig
	Storage  StorageConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type CrawlerConfig struct {
	BaseURL         string
	RateLimitMin    time.Duration
	RateLimitMax    time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	ConcurrentLimit int
	UserAgents      []string
	Proxies         []string
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type QueueConfig struct {
	Type      string
	RedisAddr string
	RedisKey  string
	BatchSize int
	MaxSize   int
}

type ArchiveConfig struct {
	Enabled  bool
	MinDelay time.Duration
	Timeout  time.Duration
}

type StorageConfig struct {
	OutputDir    string
	ProgressFile string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Crawler: CrawlerConfig{
			BaseURL:         getEnvOrDefault("CRAWLER_BASE_URL", "https://www.dpreview.com"),
			RateLimitMin:    getDurationOrDefault("CRAWLER_RATE_LIMIT_MIN", 3*time.Second),
			RateLimitMax:    getDurationOrDefault("CRAWLER_RATE_LIMIT_MAX", 10*time.Second),
			MaxRetries:      getIntOrDefault("CRAWLER_MAX_RETRIES", 3),
			RetryDelay:      getDurationOrDefault("CRAWLER_RETRY_DELAY", 5*time.Second),
			ConcurrentLimit: getIntOrDefault("CRAWLER_CONCURRENT_LIMIT", 1),
			UserAgents:      getStringSliceOrDefault("CRAWLER_USER_AGENTS", defaultUserAgents()),
			Proxies:         getStringSliceOrDefault("CRAWLER_PROXIES", []string{}),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "America/New_York"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "en-US"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			DBName:   getEnvOrDefault("DB_NAME", "dpreview_scraper"),
			SSLMode:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		},
		Queue: QueueConfig{
			Type:      getEnvOrDefault("QUEUE_TYPE", "memory"),
			RedisAddr: getEnvOrDefault("QUEUE_REDIS_ADDR", "localhost:6379"),
			RedisKey:  getEnvOrDefault("QUEUE_REDIS_KEY", "dpreview:tasks"),
			BatchSize: getIntOrDefault("QUEUE_BATCH_SIZE", 10),
			MaxSize:   getIntOrDefault("QUEUE_MAX_SIZE", 10000),
		},
		Archive: ArchiveConfig{
			Enabled:  getBoolOrDefault("ARCHIVE_ENABLED", false),
			MinDelay: getDurationOrDefault("ARCHIVE_MIN_DELAY", 5*time.Second),
			Timeout:  getDurationOrDefault("ARCHIVE_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			OutputDir:    getEnvOrDefault("STORAGE_OUTPUT_DIR", "output"),
			ProgressFile: getEnvOrDefault("STORAGE_PROGRESS_FILE", "progress.json"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Crawler.ConcurrentLimit < 1 {
		return fmt.Errorf("CRAWLER_CONCURRENT_LIMIT must be at least 1")
	}

	if c.Crawler.RateLimitMin > c.Crawler.RateLimitMax {
		return fmt.Errorf("CRAWLER_RATE_LIMIT_MIN cannot be greater than CRAWLER_RATE_LIMIT_MAX")
	}

	if c.Queue.BatchSize < 1 {
		return fmt.Errorf("QUEUE_BATCH_SIZE must be at least 1")
	}

	if c.Queue.Type != "memory" && c.Queue.Type != "redis" {
		return fmt.Errorf("QUEUE_TYPE must be memory or redis, got %q", c.Queue.Type)
	}

	if c.Storage.OutputDir == "" {
		return fmt.Errorf("STORAGE_OUTPUT_DIR cannot be empty")
	}

	return nil
}

// DSN builds a pgx-compatible connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func defaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}
