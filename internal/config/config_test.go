package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TimezoneOffsetHours != 8 {
		t.Errorf("TimezoneOffsetHours = %d, want 8", cfg.TimezoneOffsetHours)
	}
	if cfg.DefaultPrivacy != "public" {
		t.Errorf("DefaultPrivacy = %q, want public", cfg.DefaultPrivacy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "profile.yaml")
	yml := "data_dir: /var/lib/profile\ntimezone_offset_hours: -5\ndefault_privacy: private\nport: \"9000\"\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROFILE_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/lib/profile" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.TimezoneOffsetHours != -5 {
		t.Errorf("TimezoneOffsetHours = %d, want -5", cfg.TimezoneOffsetHours)
	}
	if cfg.DefaultPrivacy != "private" {
		t.Errorf("DefaultPrivacy = %q, want private", cfg.DefaultPrivacy)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port = %q, env should win over file", cfg.Port)
	}
	if got, want := cfg.DBPath(), filepath.Join("/var/lib/profile", "profile_data.db"); got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PROFILE_TZ_OFFSET=3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROFILE_TZ_OFFSET", "")
	os.Unsetenv("PROFILE_TZ_OFFSET")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TimezoneOffsetHours != 3 {
		t.Errorf("TimezoneOffsetHours = %d, want 3 from .env", cfg.TimezoneOffsetHours)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"privacy", func(c *Config) { c.DefaultPrivacy = "secret" }},
		{"transport", func(c *Config) { c.Transport = "grpc" }},
		{"offset", func(c *Config) { c.TimezoneOffsetHours = 20 }},
		{"db file", func(c *Config) { c.DBFile = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDBPathMemory(t *testing.T) {
	cfg := Default()
	cfg.DBFile = MemoryDB
	if cfg.DBPath() != MemoryDB {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath(), MemoryDB)
	}
}
