package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Conversation routing
	Conversation ConversationConfig
	NLU          NLUConfig
	LLM          LLMConfig

	// Storage
	Storage StorageConfig
	Redis   RedisConfig

	// Integrations
	Geocoder       GeocoderConfig
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
	MaxUsers  int
}

type ConversationConfig struct {
	Timezone            string
	ConfidenceThreshold float64
	PendingTTL          time.Duration
	ContextTTL          time.Duration
	MaxUsers            int
	CallTimeout         time.Duration
	TurnTimeout         time.Duration
	CancelSuperseded    bool
	RecentEntities      int
	SavingsRate         float64
	AnalysisRangeDays   int
}

// NLUConfig selects the language understanding driver: "rules" or "llm".
// The llm driver falls back to rules when every provider fails.
type NLUConfig struct {
	Driver string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// StorageConfig selects where records and conversation contexts live.
// Driver is "memory" or "postgres"; ContextDriver is "memory" or "redis".
type StorageConfig struct {
	Driver        string
	PostgresDSN   string
	ContextDriver string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GeocoderConfig struct {
	Enabled       bool
	APIURL        string
	UserAgent     string
	Region        string
	CountryCodes  string
	RatePerSecond float64
	CacheSize     int
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.PerMinute = viper.GetInt("rate_limit.per_minute")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")
	cfg.RateLimit.MaxUsers = viper.GetInt("rate_limit.max_users")

	// Conversation
	cfg.Conversation.Timezone = viper.GetString("conversation.timezone")
	cfg.Conversation.ConfidenceThreshold = viper.GetFloat64("conversation.confidence_threshold")
	cfg.Conversation.PendingTTL = viper.GetDuration("conversation.pending_ttl")
	cfg.Conversation.ContextTTL = viper.GetDuration("conversation.context_ttl")
	cfg.Conversation.MaxUsers = viper.GetInt("conversation.max_users")
	cfg.Conversation.CallTimeout = viper.GetDuration("conversation.call_timeout")
	cfg.Conversation.TurnTimeout = viper.GetDuration("conversation.turn_timeout")
	cfg.Conversation.CancelSuperseded = viper.GetBool("conversation.cancel_superseded")
	cfg.Conversation.RecentEntities = viper.GetInt("conversation.recent_entities")
	cfg.Conversation.SavingsRate = viper.GetFloat64("conversation.savings_rate")
	cfg.Conversation.AnalysisRangeDays = viper.GetInt("conversation.analysis_range_days")

	// NLU & LLM
	cfg.NLU.Driver = strings.ToLower(viper.GetString("nlu.driver"))
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	if viper.IsSet("llm.providers") {
		if providersList, ok := viper.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}
	if cfg.NLU.Driver == "llm" {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, err
		}
	}

	// Storage
	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))
	cfg.Storage.PostgresDSN = viper.GetString("storage.postgres_dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Storage.PostgresDSN = dsn
	}
	cfg.Storage.ContextDriver = strings.ToLower(viper.GetString("storage.context_driver"))
	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	if cfg.Storage.Driver == "postgres" && cfg.Storage.PostgresDSN == "" {
		return nil, fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
	}

	// Integrations
	cfg.Geocoder.Enabled = viper.GetBool("geocoder.enabled")
	cfg.Geocoder.APIURL = viper.GetString("geocoder.api_url")
	cfg.Geocoder.UserAgent = viper.GetString("geocoder.user_agent")
	cfg.Geocoder.Region = viper.GetString("geocoder.region")
	cfg.Geocoder.CountryCodes = viper.GetString("geocoder.country_codes")
	cfg.Geocoder.RatePerSecond = viper.GetFloat64("geocoder.rate_per_second")
	cfg.Geocoder.CacheSize = viper.GetInt("geocoder.cache_size")

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.per_minute", 30)
	viper.SetDefault("rate_limit.burst", 5)
	viper.SetDefault("rate_limit.max_users", 10000)

	viper.SetDefault("conversation.timezone", "Asia/Kolkata")
	viper.SetDefault("conversation.confidence_threshold", 0.6)
	viper.SetDefault("conversation.pending_ttl", "5m")
	viper.SetDefault("conversation.context_ttl", "24h")
	viper.SetDefault("conversation.max_users", 10000)
	viper.SetDefault("conversation.call_timeout", "8s")
	viper.SetDefault("conversation.turn_timeout", "20s")
	viper.SetDefault("conversation.cancel_superseded", false)
	viper.SetDefault("conversation.recent_entities", 5)
	viper.SetDefault("conversation.savings_rate", 0.2)
	viper.SetDefault("conversation.analysis_range_days", 30)

	viper.SetDefault("nlu.driver", "rules")
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 2)
	viper.SetDefault("llm.retry_delay", "500ms")
	viper.SetDefault("llm.max_total_timeout", "8s")

	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("storage.context_driver", "memory")
	viper.SetDefault("redis.addr", "localhost:6379")

	viper.SetDefault("geocoder.enabled", false)
	viper.SetDefault("geocoder.region", "Bengaluru")
	viper.SetDefault("geocoder.country_codes", "in")
	viper.SetDefault("google_calendar.token_path", "token.json")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}
	envVar := value[2 : len(value)-1]
	if envValue := viper.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)
	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		enabledCount++
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}
	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}
	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
