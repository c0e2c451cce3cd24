package config

import (
	"fmt"
	"reflect"

	"github.com/asaskevich/govalidator"
	"github.com/caarlos0/env/v11"
)

// EnvProduction selects webhook delivery mode for the bot.
const EnvProduction = "production"

// MaxSearchLimit bounds how many raw results a single search may request.
const MaxSearchLimit = 50

// Config holds the application configuration.
type Config struct {
	EnvVars  EnvVars   `json:"env"`
	Messages *Messages `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	AppEnv                  string `env:"APP_ENV" envDefault:"development"`
	Port                    string `env:"PORT" envDefault:"3001"`
	URL                     string `env:"APP_URL" envDefault:"http://localhost:3001"`
	TelegramToken           string `env:"TELEGRAM_TOKEN"`
	RedditUserAgent         string `env:"REDDIT_USER_AGENT"`
	RedditClientID          string `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret      string `env:"REDDIT_CLIENT_SECRET"`
	RedditUsername          string `env:"REDDIT_USERNAME"`
	RedditPassword          string `env:"REDDIT_PASSWORD"`
	RedditSubreddit         string `env:"REDDIT_SUBREDDIT" envDefault:"gifrecipes" optional:"true"`
	RedditRequestsPerMinute int    `env:"REDDIT_REQUESTS_PER_MINUTE" envDefault:"60" optional:"true"`
	MaxCandidates           int    `env:"MAX_CANDIDATES" envDefault:"5" optional:"true"`
	SearchLimit             int    `env:"SEARCH_LIMIT" envDefault:"50" optional:"true"`
	MessagesPath            string `env:"MESSAGES_PATH" optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	config.Messages = DefaultMessages()
	return &config, nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.EnvVars.AppEnv == EnvProduction
}

// WebhookURL is the public URL Telegram posts updates to.
func (c *Config) WebhookURL() string {
	return fmt.Sprintf("%s/webhook/%s", c.EnvVars.URL, c.EnvVars.TelegramToken)
}

// SearchLimit returns the configured raw result limit, capped at MaxSearchLimit.
func (c *Config) SearchLimit() int {
	limit := c.EnvVars.SearchLimit
	if limit <= 0 || limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// MaxCandidates returns how many candidates a chat request samples.
func (c *Config) MaxCandidates() int {
	if c.EnvVars.MaxCandidates < 1 {
		return 1
	}
	return c.EnvVars.MaxCandidates
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	if err := checkFieldsRecursive(reflect.ValueOf(c.EnvVars)); err != nil {
		return err
	}
	if !govalidator.IsURL(c.EnvVars.URL) {
		return fmt.Errorf("$APP_URL must be a valid URL, got %q", c.EnvVars.URL)
	}
	return nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
