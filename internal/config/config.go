package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig     `json:"api"`
	Storage StorageConfig `json:"storage"`
	Server  ServerConfig  `json:"server"`
}

type APIConfig struct {
	// BaseURL is the versioned backend base, e.g. http://localhost:8000/api/v1
	BaseURL string `json:"base_url"`
}

type StorageConfig struct {
	// DataDir holds the durable client state (token, pantry, form drafts).
	DataDir string `json:"data_dir"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

func Load() (*Config, error) {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	config := &Config{
		API: APIConfig{
			BaseURL: getEnvOrDefault("FRIDGECHEF_API_BASE", "http://localhost:8000/api/v1"),
		},
		Storage: StorageConfig{
			DataDir: getEnvOrDefault("FRIDGECHEF_DATA_DIR", "./data"),
		},
		Server: ServerConfig{
			Addr: getEnvOrDefault("FRIDGECHEF_ADDR", ":3000"),
		},
	}

	if _, err := url.Parse(config.API.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid FRIDGECHEF_API_BASE %q: %w", config.API.BaseURL, err)
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
