// ABOUTME: Centralized configuration for the profile search system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Storage backend names accepted by PROFILESEARCH_BACKEND
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// Config holds all configuration for the profile search system
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Vector settings
	VectorDimension int
	MatchThreshold  float64
	MatchCount      int

	// Storage settings
	Backend   string
	DBPath    string
	Partition string

	// Charm settings (cloud-synced KV backend)
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
		MatchThreshold:  getEnvFloat("MATCH_THRESHOLD", 0.5),
		MatchCount:      getEnvInt("MATCH_COUNT", 10),
		Backend:         getEnv("PROFILESEARCH_BACKEND", BackendSQLite),
		DBPath:          getEnv("PROFILESEARCH_DB", DefaultDBPath()),
		Partition:       getEnv("PROFILESEARCH_PARTITION", "linkedin_profiles"),
		CharmHost:       getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:     getEnv("CHARM_DB", "profilesearch"),
		AutoSync:        getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

// DefaultDBPath returns the default database file path following XDG spec
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "profilesearch", "profiles.db")
}

func (c *Config) Validate() error {
	if c.MatchThreshold < -1 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be -1 to 1, got %f", c.MatchThreshold)
	}
	if c.MatchCount <= 0 {
		return fmt.Errorf("MATCH_COUNT must be positive, got %d", c.MatchCount)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Partition == "" {
		return fmt.Errorf("PROFILESEARCH_PARTITION must not be empty")
	}
	if c.Backend != BackendSQLite && c.Backend != BackendCharm {
		return fmt.Errorf("PROFILESEARCH_BACKEND must be %q or %q, got %q", BackendSQLite, BackendCharm, c.Backend)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
