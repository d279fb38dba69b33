package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads variables from a .env file in the working directory or its parent, once.
// Variables already present in the environment are not overridden.
// It returns the file that was loaded, or "" when none was found.
func LoadEnv() string {
	var loaded string
	envOnce.Do(func() {
		loaded = loadEnvFile()
	})
	return loaded
}

func loadEnvFile() string {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return ""
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		return ""
	}
	return envFile
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
