package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Sui        SuiConfig        `yaml:"sui"`
	OpenRouter OpenRouterConfig `yaml:"openRouter"`
	Roast      RoastConfig      `yaml:"roast"`
	Cors       CorsConfig       `yaml:"cors"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Swagger    SwaggerConfig    `yaml:"swagger"`
}

// ServerConfig holds the server-specific configuration. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// SuiConfig holds the configuration of the Sui JSON-RPC access.
type SuiConfig struct {
	Network           string   `yaml:"network"`         // default network for requests naming none
	RPCURL            string   `yaml:"rpcURL"`          // overrides the default network's node URL
	EnabledNetworks   []string `yaml:"enabledNetworks"` // empty means every known network
	RequestTimeoutMs  int64    `yaml:"requestTimeoutMs"`
	RateLimit         float64  `yaml:"rateLimit"` // outbound calls per second per network
	BurstLimit        int      `yaml:"burstLimit"`
	ClientIdleMinutes int      `yaml:"clientIdleMinutes"`
}

// OpenRouterConfig holds the configuration of the text-generation API.
type OpenRouterConfig struct {
	APIKey           string  `yaml:"apiKey"`
	BaseURL          string  `yaml:"baseURL"`
	Model            string  `yaml:"model"`
	AppURL           string  `yaml:"appURL"`
	AppTitle         string  `yaml:"appTitle"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"maxTokens"`
	RequestTimeoutMs int64   `yaml:"requestTimeoutMs"`
}

// RoastConfig holds the per-stage deadlines of the roast pipeline.
type RoastConfig struct {
	FetchTimeoutMs    int64 `yaml:"fetchTimeoutMs"`
	GenerateTimeoutMs int64 `yaml:"generateTimeoutMs"`
}

// CorsConfig holds the allowed origins of the HTTP API.
type CorsConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SwaggerConfig controls the API docs UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

const (
	DefaultPort                = "8080"
	DefaultSuiNetwork          = "mainnet"
	DefaultOpenRouterBaseURL   = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel     = "anthropic/claude-3.5-sonnet"
	DefaultAppURL              = "http://localhost:8080"
	DefaultAppTitle            = "SUI Roast Agent"
	DefaultTemperature         = 0.9
	DefaultMaxTokens           = 500
	DefaultFetchTimeoutMs      = 15000
	DefaultGenerateTimeoutMs   = 30000
	DefaultSuiRequestTimeoutMs = 15000
	DefaultSuiRateLimit        = 10
	DefaultSuiBurstLimit       = 5
	DefaultClientIdleMinutes   = 30
	DefaultMetricsPath         = "/metrics"
	DefaultSwaggerPath         = "/swagger"
	defaultServerReadTimeoutS  = 10
	defaultServerWriteTimeoutS = 60
	defaultServerIdleTimeoutS  = 120
	defaultOpenRouterTimeoutMs = DefaultGenerateTimeoutMs
	defaultLoggingLevel        = "info"
)

// LoadConfig loads configuration from a YAML file. A missing file is not an
// error: defaults are applied to an empty configuration instead.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	cfg := Config{Metrics: MetricsConfig{Enabled: true}}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults and environment", path)
	case err != nil:
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	cfg.ApplyDefaults()
	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default value.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = defaultServerReadTimeoutS
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = defaultServerWriteTimeoutS
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = defaultServerIdleTimeoutS
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLoggingLevel
	}

	if c.Sui.Network == "" {
		c.Sui.Network = DefaultSuiNetwork
	}
	if c.Sui.RequestTimeoutMs <= 0 {
		c.Sui.RequestTimeoutMs = DefaultSuiRequestTimeoutMs
		logrus.Infof("Sui.RequestTimeoutMs not set, defaulting to %d ms", c.Sui.RequestTimeoutMs)
	}
	if c.Sui.RateLimit <= 0 {
		c.Sui.RateLimit = DefaultSuiRateLimit
	}
	if c.Sui.BurstLimit <= 0 {
		c.Sui.BurstLimit = DefaultSuiBurstLimit
	}
	if c.Sui.ClientIdleMinutes <= 0 {
		c.Sui.ClientIdleMinutes = DefaultClientIdleMinutes
	}

	if c.OpenRouter.BaseURL == "" {
		c.OpenRouter.BaseURL = DefaultOpenRouterBaseURL
		logrus.Infof("OpenRouter.BaseURL not set, defaulting to %s", c.OpenRouter.BaseURL)
	}
	if c.OpenRouter.Model == "" {
		c.OpenRouter.Model = DefaultOpenRouterModel
	}
	if c.OpenRouter.AppURL == "" {
		c.OpenRouter.AppURL = DefaultAppURL
	}
	if c.OpenRouter.AppTitle == "" {
		c.OpenRouter.AppTitle = DefaultAppTitle
	}
	if c.OpenRouter.Temperature <= 0 {
		c.OpenRouter.Temperature = DefaultTemperature
	}
	if c.OpenRouter.MaxTokens <= 0 {
		c.OpenRouter.MaxTokens = DefaultMaxTokens
	}
	if c.OpenRouter.RequestTimeoutMs <= 0 {
		c.OpenRouter.RequestTimeoutMs = defaultOpenRouterTimeoutMs
	}

	if c.Roast.FetchTimeoutMs <= 0 {
		c.Roast.FetchTimeoutMs = DefaultFetchTimeoutMs
		logrus.Infof("Roast.FetchTimeoutMs not set, defaulting to %d ms", c.Roast.FetchTimeoutMs)
	}
	if c.Roast.GenerateTimeoutMs <= 0 {
		c.Roast.GenerateTimeoutMs = DefaultGenerateTimeoutMs
		logrus.Infof("Roast.GenerateTimeoutMs not set, defaulting to %d ms", c.Roast.GenerateTimeoutMs)
	}

	if len(c.Cors.AllowOrigins) == 0 {
		c.Cors.AllowOrigins = []string{"*"}
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Swagger.Path == "" {
		c.Swagger.Path = DefaultSwaggerPath
	}
}

// Validate reports a configuration that cannot serve roasts.
// A missing API key is reported but is not fatal at startup; the pipeline
// surfaces it per request as a configuration error.
func (c *Config) Validate() error {
	if c.OpenRouter.APIKey == "" {
		return errors.New("openRouter.apiKey is not set (OPENROUTER_API_KEY)")
	}
	return nil
}

// FetchTimeout is the deadline bounding the whole wallet data fetch.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Roast.FetchTimeoutMs) * time.Millisecond
}

// GenerateTimeout is the deadline bounding the generation call.
func (c *Config) GenerateTimeout() time.Duration {
	return time.Duration(c.Roast.GenerateTimeoutMs) * time.Millisecond
}

// SuiRequestTimeout is the fallback deadline of a single Sui RPC call.
func (c *Config) SuiRequestTimeout() time.Duration {
	return time.Duration(c.Sui.RequestTimeoutMs) * time.Millisecond
}

// OpenRouterTimeout is the fallback deadline of a generation call without a ctx deadline.
func (c *Config) OpenRouterTimeout() time.Duration {
	return time.Duration(c.OpenRouter.RequestTimeoutMs) * time.Millisecond
}

// ClientIdleTTL is how long an unused Sui client is kept before it is closed.
func (c *Config) ClientIdleTTL() time.Duration {
	return time.Duration(c.Sui.ClientIdleMinutes) * time.Minute
}
