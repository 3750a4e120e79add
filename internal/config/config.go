package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	MCP      MCPConfig
	Logger   LoggerConfig
	Activity ActivityConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name         string
	Env          string
	Version      string
	SeedDemoData bool
}

// MCPConfig selects the MCP transport.
type MCPConfig struct {
	Transport string // "stdio" or "http"
	Listen    string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// ActivityConfig bounds the in-memory activity feed.
type ActivityConfig struct {
	Capacity int
	Recent   int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:         getEnv("APP_NAME", "triage-assistant"),
			Env:          getEnv("APP_ENV", "development"),
			Version:      getEnv("APP_VERSION", "dev"),
			SeedDemoData: getEnvAsBool("SEED_DEMO_DATA", true),
		},
		MCP: MCPConfig{
			Transport: getEnv("MCP_TRANSPORT", "stdio"),
			Listen:    getEnv("MCP_LISTEN", "127.0.0.1:8487"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Activity: ActivityConfig{
			Capacity: getEnvAsInt("ACTIVITY_LOG_CAPACITY", 50),
			Recent:   getEnvAsInt("ACTIVITY_LOG_RECENT", 5),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
