package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Logging     LoggingConfig  `toml:"logging"`
	Scraper     ScraperConfig  `toml:"scraper"`
	LLM         LLMConfig      `toml:"llm"`
	Analysis    AnalysisConfig `toml:"analysis"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=1,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"`
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// Duration wraps time.Duration so TOML duration strings like "30s" decode
// directly into config fields. go-toml/v2 only honors encoding.TextUnmarshaler
// for this, not the bare time.Duration type.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ScraperConfig contains page-fetch configuration for competitor scraping
type ScraperConfig struct {
	UserAgent        string   `toml:"user_agent"`         // Descriptive user agent sent with every fetch
	RequestTimeout   Duration `toml:"request_timeout"`    // Per-fetch timeout
	MaxBodySize      int      `toml:"max_body_size"`      // Response body cap in bytes
	MinContentLength int      `toml:"min_content_length"` // Below this, a scrape counts as empty
	RequestDelay     Duration `toml:"request_delay"`      // Minimum delay between requests to the same host
}

// LLMConfig selects and configures the language-model provider
type LLMConfig struct {
	Mode     string       `toml:"mode" validate:"oneof=cloud disabled"` // "cloud" or "disabled"
	Provider string       `toml:"provider"`                             // "claude" or "gemini" (cloud mode)
	Claude   ClaudeConfig `toml:"claude"`
	Gemini   GeminiConfig `toml:"gemini"`
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Timeout     string  `toml:"timeout"` // e.g. "60s"
	Temperature float32 `toml:"temperature"`
}

type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Timeout     string  `toml:"timeout"`
	Temperature float32 `toml:"temperature"`
}

// AnalysisConfig contains gap-analysis tuning
type AnalysisConfig struct {
	MaxCompetitors        int  `toml:"max_competitors"`         // Cap on competitors considered per analysis
	RefreshWorkers        int  `toml:"refresh_workers"`         // Bounded concurrency for competitor refreshes
	KeywordsPerCompetitor int  `toml:"keywords_per_competitor"` // Keywords per competitor summarized in the LLM prompt
	PersistResults        bool `toml:"persist_results"`         // Store analysis snapshots
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability; only
// user-facing settings should be exposed in contendo.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Scraper: ScraperConfig{
			UserAgent:        "ContendoBot/1.0 (content analysis; +https://github.com/ternarybob/contendo)",
			RequestTimeout:   Duration(30 * time.Second),
			MaxBodySize:      10 * 1024 * 1024, // 10MB
			MinContentLength: 100,              // Shorter scrapes persist a fallback record
			RequestDelay:     Duration(1 * time.Second),
		},
		LLM: LLMConfig{
			Mode:     "disabled", // User must opt in with an API key
			Provider: "claude",
			Claude: ClaudeConfig{
				APIKey:      "", // ANTHROPIC_API_KEY or config
				Model:       "claude-haiku-3-5-20241022",
				MaxTokens:   4096,
				Timeout:     "60s",
				Temperature: 0.7,
			},
			Gemini: GeminiConfig{
				APIKey:      "",
				Model:       "gemini-2.0-flash",
				Timeout:     "60s",
				Temperature: 0.7,
			},
		},
		Analysis: AnalysisConfig{
			MaxCompetitors:        10,
			RefreshWorkers:        3,
			KeywordsPerCompetitor: 5,
			PersistResults:        true,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against struct-level constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CONTENDO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("CONTENDO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CONTENDO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if path := os.Getenv("CONTENDO_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	// Logging configuration
	if level := os.Getenv("CONTENDO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// LLM configuration
	if mode := os.Getenv("CONTENDO_LLM_MODE"); mode != "" {
		config.LLM.Mode = mode
	}
	if provider := os.Getenv("CONTENDO_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.LLM.Claude.APIKey = key
	}
	if key := os.Getenv("CONTENDO_CLAUDE_API_KEY"); key != "" {
		config.LLM.Claude.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.LLM.Gemini.APIKey = key
	}
	if key := os.Getenv("CONTENDO_GEMINI_API_KEY"); key != "" {
		config.LLM.Gemini.APIKey = key
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
