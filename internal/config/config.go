package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// GNews settings
	GNewsAPIKey  string
	GNewsBaseURL string
	Topics       []string
	Language     string
	Country      string
	MaxPerTopic  int

	// RSS settings (optional supplemental feeds)
	FeedsConfigPath string

	// Poller settings
	PollingInterval      time.Duration
	RequestTimeout       time.Duration
	MaxConsecutiveErrors int

	// Corpus settings
	CorpusMaxArticles int
	RecentWindow      int

	// Server settings
	Host string
	Port int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		GNewsBaseURL:         "https://gnews.io/api/v4",
		Topics:               []string{"technology", "business", "science"},
		Language:             "en",
		Country:              "us",
		MaxPerTopic:          10,
		FeedsConfigPath:      os.Getenv("FEEDS_CONFIG_PATH"),
		PollingInterval:      60 * time.Second,
		RequestTimeout:       10 * time.Second,
		MaxConsecutiveErrors: 5,
		CorpusMaxArticles:    1000,
		RecentWindow:         50,
		Host:                 "0.0.0.0",
		Port:                 8080,
	}

	// Load from environment
	cfg.GNewsAPIKey = os.Getenv("GNEWS_API_KEY")

	if v := os.Getenv("GNEWS_BASE_URL"); v != "" {
		cfg.GNewsBaseURL = v
	}
	if v := os.Getenv("NEWS_TOPICS"); v != "" {
		topics := []string{}
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
		if len(topics) > 0 {
			cfg.Topics = topics
		}
	}
	if v := os.Getenv("NEWS_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("NEWS_COUNTRY"); v != "" {
		cfg.Country = v
	}
	if v := os.Getenv("POLLING_INTERVAL"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.PollingInterval = time.Duration(sec) * time.Second
		}
	}
	if v := os.Getenv("CORPUS_MAX_ARTICLES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.CorpusMaxArticles = val
		}
	}

	cfg.Host = getEnvOrDefault("HOST", cfg.Host)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GNewsAPIKey == "" {
		return fmt.Errorf("GNEWS_API_KEY is required")
	}
	if len(c.Topics) == 0 {
		return fmt.Errorf("at least one news topic is required")
	}
	if c.PollingInterval <= 0 {
		return fmt.Errorf("polling interval must be positive")
	}
	return nil
}
