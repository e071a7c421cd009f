package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/teemow/inboxtriage/internal/analysis"
	"github.com/teemow/inboxtriage/internal/store"
)

// DefaultBackendURL is where the mail proxy listens when nothing else
// is configured.
const DefaultBackendURL = "http://localhost:8080"

// Config carries everything the commands and the server need from the
// environment. OpenAIAPIKey may be empty; only analysis operations
// require it and they report the missing key themselves.
type Config struct {
	BackendURL    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	CachePath     string
}

// Load reads configuration from the environment, after loading a .env
// file when one exists in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{
		BackendURL:    getEnv("INBOXTRIAGE_BACKEND_URL", DefaultBackendURL),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", analysis.DefaultBaseURL),
		OpenAIModel:   getEnv("OPENAI_MODEL", analysis.DefaultModel),
		CachePath:     getEnv("INBOXTRIAGE_CACHE", ""),
	}

	if conf.CachePath == "" {
		path, err := store.DefaultPath()
		if err != nil {
			return nil, err
		}
		conf.CachePath = path
	}

	return conf, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
