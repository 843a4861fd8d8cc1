package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:      "catppuccin-mocha",
			Mouse:      true,
			GraphStyle: "unicode",
			ShowGraph:  true,
			DateFormat: "relative",
		},
		Performance: PerformanceConfig{
			MaxCommits:        1000,
			LazyLoadThreshold: 100,
		},
		View: ViewConfig{
			Orientation: "normal",
			ShowIndex:   false,
			PageSize:    0,
			Page:        0,
			Filter:      "",
		},
	}
}

func Load() (*Config, error) {
	config := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return config, nil
	}

	configPath := filepath.Join(home, ".config", "lazygit-lite")
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return config, nil
		}
		return nil, err
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
