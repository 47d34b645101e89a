package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the registry daemon configuration.
type Config struct {
	Listen        string        `mapstructure:"listen"`
	EnableSwagger bool          `mapstructure:"enable_swagger"`
	DatabasePath  string        `mapstructure:"database"`
	RetentionDays int           `mapstructure:"retention_days"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
	ApiSecret     string        `mapstructure:"api_secret"`
	FormFactor    string        `mapstructure:"form_factor"`
}

// Load reads configuration from file and environment.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("boardd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("/etc/boardd")
	}

	viper.SetDefault("listen", ":9560")
	viper.SetDefault("enable_swagger", true)
	viper.SetDefault("database", "boards.db")
	viper.SetDefault("retention_days", 0)
	viper.SetDefault("purge_interval", "24h")
	viper.SetDefault("api_secret", "")
	viper.SetDefault("form_factor", "ATX")

	viper.SetEnvPrefix("BOARDD")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
