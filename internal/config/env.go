// Package config loads game and server settings from defaults, an optional
// config.yaml, METEOR_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvPrefix is the prefix of every environment override (METEOR_FPS, METEOR_SSH_PORT, ...).
const EnvPrefix = "METEOR"

// Dir resolves the config directory: the explicit value if set, then
// $METEOR_CONFIG_DIR, then $HOME/.config/meteortype.
func Dir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if value, ok := os.LookupEnv(EnvPrefix + "_CONFIG_DIR"); ok && value != "" {
		return value, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "meteortype"), nil
}
