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

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
)

// Knowledge base sources accepted by faq.knowledgeBase.source.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	FAQ  FAQConfig  `yaml:"faq"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// FAQConfig controls the matcher and its supporting stores.
type FAQConfig struct {
	SimilarityThreshold float64             `yaml:"similarityThreshold"`
	SimilarityAlgorithm string              `yaml:"similarityAlgorithm"`
	TopRecommendations  int                 `yaml:"topRecommendations"`
	MatchCacheSize      int                 `yaml:"matchCacheSize"`
	KnowledgeBase       KnowledgeBaseConfig `yaml:"knowledgeBase"`
	Redis               RedisConfig         `yaml:"redis"`
}

// KnowledgeBaseConfig selects where the knowledge base is loaded from at startup.
type KnowledgeBaseConfig struct {
	Source   string         `yaml:"source"`
	Path     string         `yaml:"path"`
	S3       S3Config       `yaml:"s3"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// S3Config points at a YAML knowledge base stored in an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
}

// RedisConfig contains connection information for the trending store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables. A .env
// file in the working directory is loaded first when present; variables
// already set in the environment take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom is Load with an explicit file path. An empty path falls back to
// configs/config.yaml when it exists.
func LoadFrom(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
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
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
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
	if v := os.Getenv("FAQ_SIMILARITY_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FAQ.SimilarityThreshold = parsed
		}
	}
	if v := os.Getenv("FAQ_SIMILARITY_ALGORITHM"); v != "" {
		cfg.FAQ.SimilarityAlgorithm = v
	}
	if v := os.Getenv("FAQ_RECOMMENDATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TopRecommendations = parsed
		}
	}
	if v := os.Getenv("FAQ_MATCH_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.MatchCacheSize = parsed
		}
	}
	if v := os.Getenv("FAQ_KB_SOURCE"); v != "" {
		cfg.FAQ.KnowledgeBase.Source = strings.ToLower(v)
	}
	if v := os.Getenv("FAQ_KB_PATH"); v != "" {
		cfg.FAQ.KnowledgeBase.Path = v
	}
	if v := os.Getenv("FAQ_KB_S3_ENDPOINT"); v != "" {
		cfg.FAQ.KnowledgeBase.S3.Endpoint = v
	}
	if v := os.Getenv("FAQ_KB_S3_ACCESS_KEY"); v != "" {
		cfg.FAQ.KnowledgeBase.S3.AccessKey = v
	}
	if v := os.Getenv("FAQ_KB_S3_SECRET_KEY"); v != "" {
		cfg.FAQ.KnowledgeBase.S3.SecretKey = v
	}
	if v := os.Getenv("FAQ_KB_S3_BUCKET"); v != "" {
		cfg.FAQ.KnowledgeBase.S3.Bucket = v
	}
	if v := os.Getenv("FAQ_KB_S3_REGION"); v != "" {
		cfg.FAQ.KnowledgeBase.S3.Region = v
	}
	if v := os.Getenv("FAQ_KB_S3_KEY"); v != "" {
		cfg.FAQ.KnowledgeBase.S3.Key = v
	}
	if v := os.Getenv("FAQ_KB_POSTGRES_DSN"); v != "" {
		cfg.FAQ.KnowledgeBase.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_KB_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.KnowledgeBase.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_REDIS_ENABLED"); v != "" {
		cfg.FAQ.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("FAQ_REDIS_ADDR"); v != "" {
		cfg.FAQ.Redis.Addr = v
	}
	if v := os.Getenv("FAQ_REDIS_PREFIX"); v != "" {
		cfg.FAQ.Redis.Prefix = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		FAQ: FAQConfig{
			SimilarityThreshold: faq.DefaultSimilarityThreshold,
			SimilarityAlgorithm: faq.ScorerRatcliff,
			TopRecommendations:  5,
			MatchCacheSize:      256,
			KnowledgeBase: KnowledgeBaseConfig{
				Source: SourceBuiltin,
				Postgres: PostgresConfig{
					MaxConns: 2,
				},
			},
			Redis: RedisConfig{
				Enabled: false,
				Prefix:  "faq",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("http.shutdownTimeout must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	// zero would be read as "use the default" by the matcher
	if c.FAQ.SimilarityThreshold <= 0 || c.FAQ.SimilarityThreshold > 1 {
		return errors.New("faq.similarityThreshold must be greater than 0 and at most 1")
	}
	if !faq.KnownScorer(c.FAQ.SimilarityAlgorithm) {
		return fmt.Errorf("faq.similarityAlgorithm %q is not supported", c.FAQ.SimilarityAlgorithm)
	}
	if c.FAQ.TopRecommendations < 0 {
		return errors.New("faq.topRecommendations cannot be negative")
	}
	if c.FAQ.MatchCacheSize < 0 {
		return errors.New("faq.matchCacheSize cannot be negative")
	}
	if err := c.FAQ.KnowledgeBase.validate(); err != nil {
		return err
	}
	if c.FAQ.Redis.Enabled && strings.TrimSpace(c.FAQ.Redis.Addr) == "" {
		return errors.New("faq.redis.addr cannot be empty when redis store is enabled")
	}
	return nil
}

func (k KnowledgeBaseConfig) validate() error {
	switch k.Source {
	case SourceBuiltin:
		return nil
	case SourceFile:
		if strings.TrimSpace(k.Path) == "" {
			return errors.New("faq.knowledgeBase.path cannot be empty for file source")
		}
	case SourceS3:
		if strings.TrimSpace(k.S3.Endpoint) == "" || strings.TrimSpace(k.S3.Bucket) == "" || strings.TrimSpace(k.S3.Key) == "" {
			return errors.New("faq.knowledgeBase.s3 requires endpoint, bucket and key")
		}
	case SourcePostgres:
		if strings.TrimSpace(k.Postgres.DSN) == "" {
			return errors.New("faq.knowledgeBase.postgres.dsn cannot be empty for postgres source")
		}
	default:
		return fmt.Errorf("faq.knowledgeBase.source %q is not supported", k.Source)
	}
	return nil
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
