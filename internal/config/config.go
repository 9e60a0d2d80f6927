package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is read once at startup; nothing re-reads it per call.
type Config struct {
	DataDir             string `yaml:"data_dir"`
	DBFile              string `yaml:"db_file"`
	TimezoneOffsetHours int    `yaml:"timezone_offset_hours"`
	DefaultPrivacy      string `yaml:"default_privacy"`
	Transport           string `yaml:"transport"`
	Port                string `yaml:"port"`
	LogMode             string `yaml:"log_mode"`
	BearerToken         string `yaml:"bearer_token"`
	ResourceURL         string `yaml:"resource_url"`
	AuthServerURL       string `yaml:"auth_server_url"`
}

const MemoryDB = ":memory:"

func Default() Config {
	return Config{
		DataDir:             "./data",
		DBFile:              "profile_data.db",
		TimezoneOffsetHours: 8,
		DefaultPrivacy:      "public",
		Transport:           "stdio",
		Port:                "8088",
		LogMode:             "dev",
	}
}

// Load applies defaults, then the YAML file at path (if non-empty), then a
// .env file next to the working directory, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg.DataDir = getEnv("PROFILE_DATA_DIR", cfg.DataDir)
	cfg.DBFile = getEnv("PROFILE_DB_FILE", cfg.DBFile)
	cfg.TimezoneOffsetHours = getEnvAsInt("PROFILE_TZ_OFFSET", cfg.TimezoneOffsetHours)
	cfg.DefaultPrivacy = getEnv("PROFILE_DEFAULT_PRIVACY", cfg.DefaultPrivacy)
	cfg.Transport = getEnv("PROFILE_TRANSPORT", cfg.Transport)
	cfg.Port = getEnv("PROFILE_PORT", cfg.Port)
	cfg.LogMode = getEnv("PROFILE_LOG_MODE", cfg.LogMode)
	cfg.BearerToken = getEnv("MCP_BEARER_TOKEN", cfg.BearerToken)
	cfg.ResourceURL = getEnv("MCP_RESOURCE_URL", cfg.ResourceURL)
	cfg.AuthServerURL = getEnv("OAUTH_SERVER_BASE_URL", cfg.AuthServerURL)

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DefaultPrivacy {
	case "public", "private":
	default:
		return fmt.Errorf("default_privacy must be public or private, got %q", c.DefaultPrivacy)
	}
	switch c.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("transport must be stdio or http, got %q", c.Transport)
	}
	if c.TimezoneOffsetHours < -12 || c.TimezoneOffsetHours > 14 {
		return fmt.Errorf("timezone_offset_hours out of range: %d", c.TimezoneOffsetHours)
	}
	if c.DBFile == "" {
		return errors.New("db_file is required")
	}
	return nil
}

// DBPath is the SQLite location handed to the store.
func (c Config) DBPath() string {
	if c.DBFile == MemoryDB {
		return MemoryDB
	}
	if filepath.IsAbs(c.DBFile) {
		return c.DBFile
	}
	return filepath.Join(c.DataDir, c.DBFile)
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
