package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the briefing service.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	Share   ShareConfig   `mapstructure:"share"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address            string        `mapstructure:"address"`
	GenerationDeadline time.Duration `mapstructure:"generation_deadline"`
	PrefetchCron       string        `mapstructure:"prefetch_cron"`
	PrefetchCountry    string        `mapstructure:"prefetch_country"`
}

func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}

// LLMConfig selects and configures the model provider.
type LLMConfig struct {
	Provider      string        `mapstructure:"provider"` // gemini or openai
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	BriefingModel string        `mapstructure:"briefing_model"`
	WeatherModel  string        `mapstructure:"weather_model"`
	Temperature   float64       `mapstructure:"temperature"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	MaxToolRounds int           `mapstructure:"max_tool_rounds"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
}

func (l LLMConfig) Validate() error {
	switch l.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("llm.provider must be gemini or openai, got %q", l.Provider)
	}
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if l.MaxToolRounds <= 0 {
		return fmt.Errorf("llm.max_tool_rounds must be > 0")
	}
	return nil
}

// SearchConfig selects and configures the web-search backend behind
// the model's searchWeb tool.
type SearchConfig struct {
	Provider string `mapstructure:"provider"` // google, serper or brave
	APIKey   string `mapstructure:"api_key"`
	EngineID string `mapstructure:"engine_id"` // google custom search only
	MaxHits  int    `mapstructure:"max_hits"`
}

func (s SearchConfig) Validate() error {
	switch s.Provider {
	case "google":
		if s.EngineID == "" {
			return fmt.Errorf("search.engine_id required for the google provider")
		}
	case "serper", "brave":
	default:
		return fmt.Errorf("search.provider must be google, serper or brave, got %q", s.Provider)
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return fmt.Errorf("search.api_key is required")
	}
	return nil
}

// StorageConfig selects the share-store backend. Redis backs both the
// share store and the briefing cache; the in-memory backend is for
// local runs and loses everything on restart.
type StorageConfig struct {
	Type  string      `mapstructure:"type"`
	Redis RedisConfig `mapstructure:"redis"`
}

func (s StorageConfig) Validate() error {
	switch s.Type {
	case "redis":
		return s.Redis.Validate()
	case "inmemory":
		return nil
	}
	return fmt.Errorf("storage.type must be redis or inmemory, got %q", s.Type)
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host is required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port is required")
	}
	return nil
}

func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

// ShareConfig controls share-link persistence.
type ShareConfig struct {
	TTL      time.Duration `mapstructure:"ttl"`
	IDLength int           `mapstructure:"id_length"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (s ShareConfig) Validate() error {
	if s.TTL <= 0 {
		return fmt.Errorf("share.ttl must be > 0")
	}
	if s.IDLength < 8 {
		return fmt.Errorf("share.id_length must be >= 8")
	}
	return nil
}

// LoadConfig loads config from an optional JSON file plus QBIT_*
// environment variables. An absent file is fine as long as the
// environment supplies the required keys.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("server.address", ":10010")
	v.SetDefault("server.generation_deadline", 2*time.Minute)
	v.SetDefault("server.prefetch_cron", "0 6 * * *")
	v.SetDefault("server.prefetch_country", "Ελλάδα")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.briefing_model", "gemini-2.5-pro")
	v.SetDefault("llm.weather_model", "gemini-2.5-flash")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.max_tool_rounds", 8)
	v.SetDefault("llm.timeout", 90*time.Second)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_backoff", 500*time.Millisecond)
	v.SetDefault("search.provider", "google")
	v.SetDefault("search.max_hits", 10)
	v.SetDefault("storage.type", "redis")
	v.SetDefault("storage.redis.host", "localhost")
	v.SetDefault("storage.redis.port", "6379")
	v.SetDefault("storage.redis.timeout", 5*time.Second)
	v.SetDefault("share.ttl", 24*time.Hour)
	v.SetDefault("share.id_length", 10)
	v.SetDefault("share.cache_ttl", 15*time.Minute)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("QBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Search.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Share.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
