package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config stores configuration values for the application.
// These values can be read from a configuration file or environment variables.
type Config struct {
	// ServerAddress is the IP address where the server will listen.
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	// ServerPort is the port on which the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT"`
	// DatabaseDriver selects the store, either postgres or sqlite3.
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	// DatabaseURL is the connection string handed to the database driver.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// LogLevel is the minimum level that gets logged.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// SeedTestData inserts the demo users on startup when the users table is empty.
	SeedTestData bool `mapstructure:"SEED_TEST_DATA"`
}

// Load loads configuration settings from a specified file or environment variables.
// If both a configuration file and environment variables are used, environment variables take precedence.
// Keys missing from both fall back to their defaults.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDRESS", "")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("DATABASE_DRIVER", "sqlite3")
	v.SetDefault("DATABASE_URL", "users.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_TEST_DATA", false)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// ListenAddress returns the host:port pair the server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.ServerAddress, c.ServerPort)
}
