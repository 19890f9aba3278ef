// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// APIAuthConfig provides the shared API secret for machine clients.
type APIAuthConfig interface {
	GetAPISecretKey() string
}

// SearchConfig provides settings for the Serper.dev search client.
type SearchConfig interface {
	GetSerperAPIKey() string
}

// ScraperConfig provides settings for the website scraper.
type ScraperConfig interface {
	GetScraperUserAgent() string
}

// MistralConfig provides settings for the Mistral analysis client.
type MistralConfig interface {
	GetMistralAPIKey() string
	GetMistralModel() string
	GetMistralBaseURL() string
}

// DiscoveryConfig provides settings for the email discovery subsystem.
type DiscoveryConfig interface {
	GetValidatorURL() string
	GetValidatorTimeout() time.Duration
	GetPatternStoreBackend() string
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides Redis connection settings.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq background worker.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// CRMConfig provides settings for pushing enrichment results to the CRM.
type CRMConfig interface {
	GetSaveEnrichmentURL() string
	GetTokenObtainURL() string
	GetCRMEmail() string
	GetCRMPassword() string
	IsCRMPushEnabled() bool
}

// RevealConfig provides settings for cross-domain reveal tokens.
type RevealConfig interface {
	GetRevealSecretKey() string
	GetRevealTokenTTL() time.Duration
	GetCRMLandingPageURL() string
}

// Pattern store backends selectable via PATTERN_STORE.
const (
	PatternStoreMemory   = "memory"
	PatternStoreRedis    = "redis"
	PatternStorePostgres = "postgres"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	APISecretKey        string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	SerperAPIKey        string
	ScraperUserAgent    string
	MistralAPIKey       string
	MistralModel        string
	MistralBaseURL      string
	ValidatorURL        string
	ValidatorTimeout    time.Duration
	PatternStoreBackend string
	DatabaseURL         string
	RedisURL            string
	RedisTLSInsecure    bool
	AsynqQueueName      string
	AsynqConcurrency    int
	SaveEnrichmentURL   string
	TokenObtainURL      string
	CRMEmail            string
	CRMPassword         string
	RevealSecretKey     string
	RevealTokenTTL      time.Duration
	CRMLandingPageURL   string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string       { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool     { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string  { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool   { return c.CORSAllowCreds }

// APIAuthConfig implementation
func (c *Config) GetAPISecretKey() string { return c.APISecretKey }

// SearchConfig implementation
func (c *Config) GetSerperAPIKey() string { return c.SerperAPIKey }

// ScraperConfig implementation
func (c *Config) GetScraperUserAgent() string { return c.ScraperUserAgent }

// MistralConfig implementation
func (c *Config) GetMistralAPIKey() string  { return c.MistralAPIKey }
func (c *Config) GetMistralModel() string   { return c.MistralModel }
func (c *Config) GetMistralBaseURL() string { return c.MistralBaseURL }

// DiscoveryConfig implementation
func (c *Config) GetValidatorURL() string            { return c.ValidatorURL }
func (c *Config) GetValidatorTimeout() time.Duration { return c.ValidatorTimeout }
func (c *Config) GetPatternStoreBackend() string     { return c.PatternStoreBackend }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// RedisConfig implementation
func (c *Config) GetRedisURL() string      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// CRMConfig implementation
func (c *Config) GetSaveEnrichmentURL() string { return c.SaveEnrichmentURL }
func (c *Config) GetTokenObtainURL() string    { return c.TokenObtainURL }
func (c *Config) GetCRMEmail() string          { return c.CRMEmail }
func (c *Config) GetCRMPassword() string       { return c.CRMPassword }
func (c *Config) IsCRMPushEnabled() bool {
	return c.SaveEnrichmentURL != "" && c.TokenObtainURL != "" && c.CRMEmail != "" && c.CRMPassword != ""
}

// RevealConfig implementation
func (c *Config) GetRevealSecretKey() string        { return c.RevealSecretKey }
func (c *Config) GetRevealTokenTTL() time.Duration  { return c.RevealTokenTTL }
func (c *Config) GetCRMLandingPageURL() string      { return c.CRMLandingPageURL }

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from the environment (and .env when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		APISecretKey:        getEnv("API_SECRET_KEY", ""),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		SerperAPIKey:        getEnv("SERPER_API_KEY", ""),
		ScraperUserAgent:    getEnv("SCRAPER_USER_AGENT", defaultUserAgent),
		MistralAPIKey:       getEnv("MISTRAL_API_KEY", ""),
		MistralModel:        getEnv("MISTRAL_MODEL", "mistral-small-latest"),
		MistralBaseURL:      getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
		ValidatorURL:        getEnv("VALIDATOR_URL", ""),
		ValidatorTimeout:    mustDuration(getEnv("VALIDATOR_TIMEOUT", "30s")),
		PatternStoreBackend: strings.ToLower(getEnv("PATTERN_STORE", PatternStoreMemory)),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisTLSInsecure:    strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:      getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:    mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		SaveEnrichmentURL:   getEnv("SAVE_ENRICHMENT_URL", ""),
		TokenObtainURL:      getEnv("TOKEN_OBTAIN_URL", ""),
		CRMEmail:            getEnv("SAVE_ENRICHMENT_EMAIL", ""),
		CRMPassword:         getEnv("SAVE_ENRICHMENT_PASSWORD", ""),
		RevealSecretKey:     getEnv("JWT_SECRET_KEY", ""),
		RevealTokenTTL:      mustDuration(getEnv("REVEAL_TOKEN_TTL", "5m")),
		CRMLandingPageURL:   getEnv("CRM_LANDING_PAGE_URL", ""),
	}

	if cfg.APISecretKey == "" {
		return nil, fmt.Errorf("API_SECRET_KEY is required")
	}
	if cfg.SerperAPIKey == "" {
		return nil, fmt.Errorf("SERPER_API_KEY is required")
	}
	if cfg.MistralAPIKey == "" {
		return nil, fmt.Errorf("MISTRAL_API_KEY is required")
	}
	if cfg.ValidatorURL == "" {
		return nil, fmt.Errorf("VALIDATOR_URL is required")
	}

	switch cfg.PatternStoreBackend {
	case PatternStoreMemory:
	case PatternStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when PATTERN_STORE is redis")
		}
	case PatternStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when PATTERN_STORE is postgres")
		}
	default:
		return nil, fmt.Errorf("unknown PATTERN_STORE backend %q", cfg.PatternStoreBackend)
	}

	if cfg.IsCRMPushEnabled() && cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when CRM push is configured")
	}
	if cfg.RevealSecretKey == "" && cfg.CRMLandingPageURL != "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required when CRM_LANDING_PAGE_URL is set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
