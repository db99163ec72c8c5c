// Package config provides process configuration: environment settings for
// the binaries and the playfield layout file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// SSH holds the settings of the SSH host.
type SSH struct {
	Host        string `env:"SSH_HOST" envDefault:"::"`
	Port        string `env:"SSH_PORT" envDefault:"2222"`
	HostKeyPath string `env:"SSH_HOST_KEY" envDefault:"/app/keys/host_key"`
	LayoutFile  string `env:"EGGCATCH_LAYOUT"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Web holds the settings of the landing page server.
type Web struct {
	Host        string `env:"WEB_HOST" envDefault:"0.0.0.0"`
	Port        string `env:"WEB_PORT" envDefault:"8080"`
	DisplayHost string `env:"SSH_DISPLAY_HOST" envDefault:"your-server.com"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Local holds the settings of the single-player terminal binary.
type Local struct {
	LayoutFile string `env:"EGGCATCH_LAYOUT"`
	LogFile    string `env:"EGGCATCH_LOG_FILE"` // Logs are discarded when empty
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
