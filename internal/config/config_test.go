package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("REDDIT_USER_AGENT", "lookforrecipes/1.0")
	t.Setenv("REDDIT_CLIENT_ID", "client")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_USERNAME", "chef")
	t.Setenv("REDDIT_PASSWORD", "hunter2")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.EnvVars.Port != "3001" {
		t.Errorf("Port = %q, want '3001'", cfg.EnvVars.Port)
	}
	if cfg.EnvVars.RedditSubreddit != "gifrecipes" {
		t.Errorf("RedditSubreddit = %q, want 'gifrecipes'", cfg.EnvVars.RedditSubreddit)
	}
	if cfg.MaxCandidates() != 5 {
		t.Errorf("MaxCandidates = %d, want 5", cfg.MaxCandidates())
	}
	if cfg.SearchLimit() != 50 {
		t.Errorf("SearchLimit = %d, want 50", cfg.SearchLimit())
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
	if cfg.Messages == nil || cfg.Messages.NoResults == "" {
		t.Error("LoadConfig should populate default messages")
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("CheckConfigEnvFields error: %v", err)
	}
}

func TestCheckConfigEnvFields_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDDIT_PASSWORD", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	err = cfg.CheckConfigEnvFields()
	if err == nil {
		t.Fatal("CheckConfigEnvFields should fail when REDDIT_PASSWORD is empty")
	}
	if err.Error() != "$RedditPassword must be set" {
		t.Errorf("error = %q, want '$RedditPassword must be set'", err.Error())
	}
}

func TestCheckConfigEnvFields_InvalidURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_URL", "not a url")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	err = cfg.CheckConfigEnvFields()
	if err == nil {
		t.Fatal("CheckConfigEnvFields should reject an invalid APP_URL")
	}
	if !strings.HasPrefix(err.Error(), "$APP_URL must be a valid URL") {
		t.Errorf("error = %q, want it to name $APP_URL", err)
	}
}

func TestSearchLimit_CappedAtMaximum(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{SearchLimit: 500}}
	if got := cfg.SearchLimit(); got != MaxSearchLimit {
		t.Errorf("SearchLimit = %d, want %d", got, MaxSearchLimit)
	}
}

func TestSearchLimit_BelowMaximum(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{SearchLimit: 25}}
	if got := cfg.SearchLimit(); got != 25 {
		t.Errorf("SearchLimit = %d, want 25", got)
	}
}

func TestMaxCandidates_AtLeastOne(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{MaxCandidates: 0}}
	if got := cfg.MaxCandidates(); got != 1 {
		t.Errorf("MaxCandidates = %d, want 1", got)
	}
}

func TestWebhookURL(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{URL: "https://bot.example.com", TelegramToken: "123:abc", AppEnv: EnvProduction}}
	if got := cfg.WebhookURL(); got != "https://bot.example.com/webhook/123:abc" {
		t.Errorf("WebhookURL = %q", got)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction should be true for APP_ENV=production")
	}
}
