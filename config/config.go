package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"task-reminder/pkg/datemath"
)

// ErrMissingBotToken is returned by RequireTelegram when no bot token is configured.
var ErrMissingBotToken = errors.New("telegram bot token is not configured")

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Reminder assistant specifics
	Telegram       TelegramConfig
	Parser         ParserConfig
	Storage        StorageConfig
	Notion         NotionConfig
	GoogleCalendar GoogleCalendarConfig
	Reminder       ReminderConfig

	// LLM Provider Abstraction
	LLM LLMConfig
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

type TelegramConfig struct {
	BotToken        string
	WebhookURL      string
	WebhookSecret   string // compared with X-Telegram-Bot-Api-Secret-Token
	RateLimitPerMin int
	NgrokAPIURL     string // local ngrok API used to discover the webhook URL when WebhookURL is empty
}

// ParserConfig controls natural-language extraction.
type ParserConfig struct {
	Timezone   string
	Locale     string
	LLMTimeout time.Duration
}

type StorageConfig struct {
	SQLitePath string
}

type NotionConfig struct {
	Token      string
	DatabaseID string
	Version    string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

type ReminderConfig struct {
	PollInterval time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // global timeout for the entire fallback chain
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

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
func Load() (*Config, error) {
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

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = viper.GetString("telegram.webhook_secret")
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")
	cfg.Telegram.NgrokAPIURL = viper.GetString("telegram.ngrok_api_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Parser
	cfg.Parser.Timezone = viper.GetString("parser.timezone")
	cfg.Parser.Locale = viper.GetString("parser.locale")
	cfg.Parser.LLMTimeout = viper.GetDuration("parser.llm_timeout")
	if _, err := datemath.NewParser(cfg.Parser.Timezone, datemath.WithLocale(cfg.Parser.Locale)); err != nil {
		return nil, fmt.Errorf("parser config: %w", err)
	}
	if cfg.Parser.LLMTimeout <= 0 {
		return nil, fmt.Errorf("parser config: llm_timeout must be positive, got %s", cfg.Parser.LLMTimeout)
	}

	// Storage
	cfg.Storage.SQLitePath = viper.GetString("storage.sqlite_path")

	// Notion
	cfg.Notion.Token = viper.GetString("notion.token")
	cfg.Notion.DatabaseID = viper.GetString("notion.database_id")
	cfg.Notion.Version = viper.GetString("notion.version")
	if notionToken := viper.GetString("notion_token"); notionToken != "" {
		cfg.Notion.Token = notionToken
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// Reminders
	cfg.Reminder.PollInterval = viper.GetDuration("reminder.poll_interval")
	if cfg.Reminder.PollInterval <= 0 {
		return nil, fmt.Errorf("reminder config: poll_interval must be positive, got %s", cfg.Reminder.PollInterval)
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// No providers is valid: extraction then runs on the deterministic parser only.
	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}

	return cfg, nil
}

// RequireTelegram checks the settings the api binary cannot start without.
func (c *Config) RequireTelegram() error {
	if strings.TrimSpace(c.Telegram.BotToken) == "" {
		return ErrMissingBotToken
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("telegram.rate_limit_per_min", 30)

	viper.SetDefault("parser.timezone", "UTC")
	viper.SetDefault("parser.locale", datemath.LocaleEnglish)
	viper.SetDefault("parser.llm_timeout", "20s")

	viper.SetDefault("storage.sqlite_path", "tasks.db")
	viper.SetDefault("notion.version", "2022-06-28")
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("reminder.poll_interval", "30s")

	// LLM defaults: one attempt, no cross-provider fallback
	viper.SetDefault("llm.fallback_enabled", false)
	viper.SetDefault("llm.max_total_timeout", "20s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		// Unresolved placeholders are treated as missing keys
		return ""
	}

	return value
}

// validateLLMConfig validates the configured providers. An empty list is allowed.
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	if cfg.MaxTotalTimeout != "" {
		if d, err := time.ParseDuration(cfg.MaxTotalTimeout); err != nil || d < 0 {
			return fmt.Errorf("max_total_timeout must be a non-negative duration, got %q", cfg.MaxTotalTimeout)
		}
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
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
