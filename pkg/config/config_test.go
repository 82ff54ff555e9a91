package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
data:
  backend: file
  dir: ./data
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Forecast.Window != 8 || c.Forecast.DefaultHorizon != 4 {
		t.Fatalf("unexpected forecast defaults: %+v", c.Forecast)
	}
	if c.Forecast.LinearWeight != 0.3 || c.Forecast.SeasonalWeight != 0.4 || c.Forecast.MLWeight != 0.3 {
		t.Fatalf("unexpected ensemble weight defaults: %+v", c.Forecast)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
environment: test
data:
  backend: mongo
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadRequiresSQLitePath(t *testing.T) {
	path := writeConfig(t, `
environment: test
data:
  backend: sqlite
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing sqlite_path")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: test
data:
  backend: file
  dir: ./data
`)
	t.Setenv("DATA_DIR", "/var/lib/tradepulse")
	t.Setenv("INSIGHTS_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_PORT", "not-a-number")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Data.Dir != "/var/lib/tradepulse" {
		t.Fatalf("env override not applied: %s", c.Data.Dir)
	}
	if c.Insights.APIKey != "sk-test" {
		t.Fatalf("insights key override not applied")
	}
	if c.Server.Port != 9090 {
		t.Fatalf("port override not applied: %d", c.Server.Port)
	}
	if c.Cache.Redis.Port != 6379 {
		t.Fatalf("invalid redis port override must keep the default, got %d", c.Cache.Redis.Port)
	}
}
