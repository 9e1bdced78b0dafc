package config

import "os"

// GetEnv reads an environment variable, returning "" when unset.
// godotenv is loaded once in main before anything calls this.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable with a fallback value.
func GetEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
