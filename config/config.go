package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DBType          string `mapstructure:"DB_TYPE"` // sqlite, postgres, mysql
	DSN             string `mapstructure:"DSN"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	Port            int    `mapstructure:"PORT"`
	BypassSecret    string `mapstructure:"BYPASS_SECRET"` // empty disables the deployment bypass
	AdminRole       string `mapstructure:"ADMIN_ROLE"`
	SessionSecret   string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	LoginURL        string `mapstructure:"LOGIN_URL"` // empty disables HTML redirects on denial
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_TYPE", "sqlite")
	viper.SetDefault("DSN", "guardrail.db")
	viper.SetDefault("ADMIN_ROLE", "Admin")
	viper.SetDefault("SESSION_TTL_HOURS", 24)

	// AutomaticEnv only resolves keys viper already knows about.
	// Secrets have no meaningful default, so register them explicitly
	// or their env values are never picked up.
	viper.SetDefault("BYPASS_SECRET", "")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("LOGIN_URL", "")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
