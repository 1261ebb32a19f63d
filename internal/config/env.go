package config

import (
	"os"
	"strings"
)

// EnvConfigPath names the variable that points LoadConfig at a config directory.
const EnvConfigPath = "BINGO_CONFIG_PATH"

// ConfigPath returns the directory named by BINGO_CONFIG_PATH, or fallback when unset.
func ConfigPath(fallback string) string {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path
	}
	return fallback
}
