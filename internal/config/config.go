package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// DBPath is the SQLite database file owned by this process.
	DBPath string `mapstructure:"TRASTIENDA_DB_PATH"`
	// BackupDir receives timestamped copies of the database file.
	BackupDir string `mapstructure:"TRASTIENDA_BACKUP_DIR"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TRASTIENDA_DB_PATH", "data.sqlite")
	viper.SetDefault("TRASTIENDA_BACKUP_DIR", "backups")

	// Optional .env file for local development; missing is fine.
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
