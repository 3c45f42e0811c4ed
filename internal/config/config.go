package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	APIKeys        []string `mapstructure:"API_KEYS"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`

	// ChatKit is the external messaging-and-storage provider that owns
	// users, appointments, records, dialogs and attachment content.
	ChatKitAPIEndpoint  string `mapstructure:"CHATKIT_API_ENDPOINT"`
	ChatKitChatEndpoint string `mapstructure:"CHATKIT_CHAT_ENDPOINT"`
	ChatKitAppID        string `mapstructure:"CHATKIT_APP_ID"`
	ChatKitAuthKey      string `mapstructure:"CHATKIT_AUTH_KEY"`
	ChatKitAuthSecret   string `mapstructure:"CHATKIT_AUTH_SECRET"`
	ChatKitAdminID      string `mapstructure:"CHATKIT_ADMIN_ID"`

	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`

	AITranslate   bool `mapstructure:"AI_TRANSLATE"`
	AIQuickAnswer bool `mapstructure:"AI_QUICK_ANSWER"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "4000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("AI_TRANSLATE", true)
	v.SetDefault("AI_QUICK_ANSWER", true)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("API_KEYS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("CHATKIT_API_ENDPOINT")
	v.BindEnv("CHATKIT_CHAT_ENDPOINT")
	v.BindEnv("CHATKIT_APP_ID")
	v.BindEnv("CHATKIT_AUTH_KEY")
	v.BindEnv("CHATKIT_AUTH_SECRET")
	v.BindEnv("CHATKIT_ADMIN_ID")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_MODEL")
	v.BindEnv("AI_TRANSLATE")
	v.BindEnv("AI_QUICK_ANSWER")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	if cfg.APIKeys == nil {
		keys := v.GetString("API_KEYS")
		if keys != "" {
			cfg.APIKeys = strings.Split(keys, ",")
		}
	}

	if cfg.ChatKitAppID == "" {
		return nil, fmt.Errorf("CHATKIT_APP_ID is required")
	}
	if cfg.ChatKitAuthSecret == "" {
		return nil, fmt.Errorf("CHATKIT_AUTH_SECRET is required")
	}

	if cfg.IsDev() && len(cfg.APIKeys) == 0 {
		log.Println("WARNING: Server is running without API keys (ENV=development).")
		log.Println("WARNING: Only session-token requests will be accepted.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AIEnabled reports whether any AI assist feature can run: both features are
// config-gated and need an OpenAI credential.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != "" && (c.AITranslate || c.AIQuickAnswer)
}

// Validate checks that the configuration is safe to run. Production must set
// the ChatKit endpoints explicitly and carry at least one API key so that
// server-to-server calls are authenticated.
func (c *Config) Validate() error {
	if c.ChatKitAPIEndpoint == "" {
		return fmt.Errorf("CHATKIT_API_ENDPOINT is required")
	}
	if c.ChatKitChatEndpoint == "" {
		return fmt.Errorf("CHATKIT_CHAT_ENDPOINT is required")
	}
	if c.ChatKitAdminID == "" {
		return fmt.Errorf("CHATKIT_ADMIN_ID is required")
	}
	if c.IsProduction() && len(c.APIKeys) == 0 {
		return fmt.Errorf("API_KEYS is required in production")
	}
	if c.IsProduction() && c.AITranslate && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when AI_TRANSLATE is enabled")
	}
	return nil
}
