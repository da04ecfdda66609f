package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite3
  path: /tmp/predictions.db
http:
  port: 9090
  timeout: 5s
report:
  locale: id
`)
	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Database.Driver != "sqlite3" || config.Database.Path != "/tmp/predictions.db" {
		t.Fatalf("unexpected database section: %+v", config.Database)
	}
	if config.Http.Port != 9090 || config.Http.Timeout != 5*time.Second {
		t.Fatalf("unexpected http section: %+v", config.Http)
	}
	if config.ML.ModelType != "linear" {
		t.Fatalf("expected default model type, got %q", config.ML.ModelType)
	}
	if config.Report.Locale != "id" {
		t.Fatalf("expected id locale, got %q", config.Report.Locale)
	}
}

func TestDefaultsKeepStoreConstants(t *testing.T) {
	def := Default()
	if def.Database.Host != "localhost" || def.Database.User != "root" || def.Database.Name != "asuransi_projek1" {
		t.Fatalf("unexpected defaults: %+v", def.Database)
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: oracle\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	config, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Database.Driver != "mysql" {
		t.Fatalf("expected default driver, got %q", config.Database.Driver)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load should fail on a missing file")
	}
}
