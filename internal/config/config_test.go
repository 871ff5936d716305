package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `webhook_url: https://example.test/hook
webhook_kind: teams
message_mode: card
listen_addr: ":9090"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("MESSAGE_MODE", "text")
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("DEBUG", "true")

	cfg := LoadConfig()
	if cfg.WebhookURL != "https://example.test/hook" {
		t.Errorf("WebhookURL = %q", cfg.WebhookURL)
	}
	if cfg.MessageMode != "text" {
		t.Errorf("env override lost, MessageMode = %q", cfg.MessageMode)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if !cfg.Debug {
		t.Error("Debug not set from env")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	for _, key := range []string{
		"WEBHOOK_URL", "WEBHOOK_KIND", "MESSAGE_MODE", "LISTEN_ADDR",
		"INBOX_DIR", "WATCH_SCHEDULE", "TIMEZONE", "LLM_MODEL", "DEBUG",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.WebhookKind != "teams" {
		t.Errorf("default WebhookKind = %q", cfg.WebhookKind)
	}
	if cfg.MessageMode != "text" {
		t.Errorf("default MessageMode = %q", cfg.MessageMode)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("default ListenAddr = %q", cfg.ListenAddr)
	}
}

func TestLoadPriorityHosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.yaml")
	yaml := `hosts:
  - "Smith John"
  - "  Doe Jane  "
  - ""
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write hosts: %v", err)
	}

	hosts, err := LoadPriorityHosts(path)
	if err != nil {
		t.Fatalf("LoadPriorityHosts: %v", err)
	}
	if len(hosts) != 2 || hosts[0] != "Smith John" || hosts[1] != "Doe Jane" {
		t.Errorf("hosts = %v", hosts)
	}
}

func TestLoadPriorityHostsMissingFile(t *testing.T) {
	if _, err := LoadPriorityHosts(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
