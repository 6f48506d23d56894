package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Research   ResearchConfig   `yaml:"research" mapstructure:"research"`
	Signals    SignalsConfig    `yaml:"signals" mapstructure:"signals"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// PerplexityConfig holds Perplexity API settings. An empty key puts the
// research and signal components into offline mode.
type PerplexityConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	Model     string  `yaml:"model" mapstructure:"model"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// AnthropicConfig holds Anthropic API settings. An empty key puts the
// decision synthesizer into deterministic fallback mode.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ResearchConfig tunes competitor research.
type ResearchConfig struct {
	MaxConcurrentDetails int `yaml:"max_concurrent_details" mapstructure:"max_concurrent_details"`
	CacheTTLHours        int `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// SignalsConfig tunes the market signal freshness windows.
type SignalsConfig struct {
	MarketTTLDays int `yaml:"market_ttl_days" mapstructure:"market_ttl_days"`
	PainTTLDays   int `yaml:"pain_ttl_days" mapstructure:"pain_ttl_days"`
}

// BatchConfig configures the batch validation command.
type BatchConfig struct {
	MaxConcurrentIdeas int `yaml:"max_concurrent_ideas" mapstructure:"max_concurrent_ideas"`
}

// ServerConfig configures the HTTP wrapper.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// HasPerplexity reports whether a search credential is configured.
func (c *Config) HasPerplexity() bool {
	return c.Perplexity.Key != ""
}

// HasAnthropic reports whether an LLM credential is configured.
func (c *Config) HasAnthropic() bool {
	return c.Anthropic.Key != ""
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VENTURELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar")
	v.SetDefault("perplexity.rate_limit", 2.0)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("research.max_concurrent_details", 3)
	v.SetDefault("research.cache_ttl_hours", 24)
	v.SetDefault("signals.market_ttl_days", 7)
	v.SetDefault("signals.pain_ttl_days", 3)
	v.SetDefault("batch.max_concurrent_ideas", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
