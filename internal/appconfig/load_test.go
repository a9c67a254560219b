package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Name != "loopback" {
		t.Fatalf("engine = %q, want loopback", cfg.Engine.Name)
	}
	if cfg.Repl.IntervalMS != 30 || cfg.Repl.HistoryCount != 20 {
		t.Fatalf("repl defaults = %+v", cfg.Repl)
	}
}

func TestLoadRejectsUnsupportedConfigVersion(t *testing.T) {
	path := writeConfig(t, `
config_version: 99
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported config_version") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
engine:
  name: carrier-pigeon
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported engine.name") {
		t.Fatalf("expected engine error, got %v", err)
	}
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
theme:
  name: neon
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported theme.name") {
		t.Fatalf("expected theme error, got %v", err)
	}
}

func TestLoadReadsBootstrapNodes(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
savedata: /tmp/minitalk/savedata.bin
repl:
  interval_ms: 15
  history_count: 50
bootstrap:
  - host: node.example.org
    port: 33445
    key: "3F0A45A268367C1BEA652F258C85F4A66DA76BCAA667A49E770BCC4917AB6A25"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Bootstrap) != 1 || cfg.Bootstrap[0].Host != "node.example.org" || cfg.Bootstrap[0].Port != 33445 {
		t.Fatalf("bootstrap = %+v", cfg.Bootstrap)
	}
	client, err := cfg.ClientConfig()
	if err != nil {
		t.Fatalf("client config: %v", err)
	}
	if client.ReplInterval != 15*time.Millisecond {
		t.Fatalf("repl interval = %v", client.ReplInterval)
	}
	if client.HistoryCount != 50 {
		t.Fatalf("history count = %d", client.HistoryCount)
	}
	if client.SavedataPath != "/tmp/minitalk/savedata.bin" {
		t.Fatalf("savedata = %q", client.SavedataPath)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	value := expandEnv("$FOO/$UID/$GID/$MISSING")
	if !strings.HasPrefix(value, "bar/") {
		t.Fatalf("expected env expansion, got %q", value)
	}
	if strings.Contains(value, "$UID") || strings.Contains(value, "$GID") {
		t.Fatalf("expected UID/GID expansion, got %q", value)
	}
	if !strings.HasSuffix(value, "/$MISSING") {
		t.Fatalf("expected missing vars to remain, got %q", value)
	}
}

func TestWriteDefaultRespectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected path %q, got %q", path, written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config to exist: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
