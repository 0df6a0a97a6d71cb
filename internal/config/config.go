package config

import (
	"github.com/spf13/viper"
)

// Config holds the process-level settings. Core packages never read
// these themselves; cmd/bank resolves them once and passes explicit
// arguments down.
type Config struct {
	DataFile              string
	DefaultOverdraftLimit float64
	LogFile               string
	LogLevel              string
}

// Load reads configuration from an optional bank.yaml in the working
// directory, overridable through BANK_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("data_file", "customers_database.json")
	v.SetDefault("default_overdraft_limit", 1000)
	v.SetDefault("log_file", "bank.log")
	v.SetDefault("log_level", "info")

	v.SetConfigName("bank")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("BANK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; anything else is a real problem.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		DataFile:              v.GetString("data_file"),
		DefaultOverdraftLimit: v.GetFloat64("default_overdraft_limit"),
		LogFile:               v.GetString("log_file"),
		LogLevel:              v.GetString("log_level"),
	}, nil
}
