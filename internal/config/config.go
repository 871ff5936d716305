// Package config loads service configuration from config.yaml with
// environment variable overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cabsbot/internal/delivery"
)

type Config struct {
	WebhookURL  string `yaml:"webhook_url"`
	WebhookKind string `yaml:"webhook_kind"` // teams or slack
	MessageMode string `yaml:"message_mode"` // text or card

	ListenAddr    string `yaml:"listen_addr"`
	InboxDir      string `yaml:"inbox_dir"`
	WatchSchedule string `yaml:"watch_schedule"` // 5-field cron expression, empty disables the watcher
	Timezone      string `yaml:"timezone"`

	LayoutsPath       string `yaml:"layouts_path"`
	PriorityHostsPath string `yaml:"priority_hosts_path"`

	DBPath string `yaml:"db_path"` // empty disables the run journal

	AnthropicAPIKey string `yaml:"anthropic_api_key"` // empty disables meeting type classification
	LLMModel        string `yaml:"llm_model"`

	ExternalHTTPTimeoutSeconds int  `yaml:"external_http_timeout_seconds"`
	Debug                      bool `yaml:"debug"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.WebhookURL, "WEBHOOK_URL")
	envOverride(&cfg.WebhookKind, "WEBHOOK_KIND")
	envOverride(&cfg.MessageMode, "MESSAGE_MODE")
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.InboxDir, "INBOX_DIR")
	envOverride(&cfg.WatchSchedule, "WATCH_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.LayoutsPath, "LAYOUTS_PATH")
	envOverride(&cfg.PriorityHostsPath, "PRIORITY_HOSTS_PATH")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS")
	envOverrideBool(&cfg.Debug, "DEBUG")

	// Defaults
	if cfg.WebhookKind == "" {
		cfg.WebhookKind = delivery.KindTeams
	}
	if cfg.MessageMode == "" {
		cfg.MessageMode = delivery.ModeText
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "claude-3-5-haiku-latest"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	switch cfg.WebhookKind {
	case delivery.KindTeams, delivery.KindSlack:
	default:
		log.Fatalf("webhook_kind must be 'teams' or 'slack', got '%s'", cfg.WebhookKind)
	}
	switch cfg.MessageMode {
	case delivery.ModeText, delivery.ModeCard:
	default:
		log.Fatalf("message_mode must be 'text' or 'card', got '%s'", cfg.MessageMode)
	}
	if cfg.WatchSchedule != "" && cfg.InboxDir == "" {
		log.Fatalf("inbox_dir is required when watch_schedule is set")
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Timezone = time.Local.String()
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		time.Local = loc
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

// PriorityHosts is the optional allowlist of hosts whose schedules are
// posted. Names are written "Lastname Firstname" the way reception
// enters them.
type PriorityHosts struct {
	Hosts []string `yaml:"hosts"`
}

func LoadPriorityHosts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read priority hosts: %w", err)
	}
	var ph PriorityHosts
	if err := yaml.Unmarshal(data, &ph); err != nil {
		return nil, fmt.Errorf("parse priority hosts yaml: %w", err)
	}
	var out []string
	for _, h := range ph.Hosts {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out, nil
}
