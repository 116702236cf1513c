package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by boxsync commands.
const EnvPrefix = "BOXSYNC_"

// ParseEnv loads configuration from environment variables.
//
// Field tags are written without the shared prefix; ParseEnv applies
// EnvPrefix so `env:"DB_PATH"` reads BOXSYNC_DB_PATH.
func ParseEnv(target any) error {
	return ParseEnvWithPrefix(target, EnvPrefix)
}

// ParseEnvWithPrefix loads configuration using an explicit variable prefix.
func ParseEnvWithPrefix(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
