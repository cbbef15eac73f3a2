// Package config loads monobar settings from the environment, an optional
// .env file and an optional config.yaml in the data directory.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/vasylcode/monobar/internal/currency"
	"github.com/vasylcode/monobar/internal/model"
	"github.com/vasylcode/monobar/internal/storage"
)

// Config holds all the configuration variables of monobar
type Config struct {
	Token        string        `mapstructure:"MONO_TOKEN"`
	APIURL       string        `mapstructure:"MONO_API_URL"`
	HomeCurrency string        `mapstructure:"MONO_HOME_CURRENCY"`
	CacheTTL     time.Duration `mapstructure:"MONO_CACHE_TTL"`
	HTTPTimeout  time.Duration `mapstructure:"MONO_HTTP_TIMEOUT"`
	DataDir      string        `mapstructure:"MONO_DATA_DIR"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	LogFormat    string        `mapstructure:"LOG_FORMAT"`
	LogFile      string        `mapstructure:"LOG_FILE"`
}

var keys = []string{
	"MONO_TOKEN",
	"MONO_API_URL",
	"MONO_HOME_CURRENCY",
	"MONO_CACHE_TTL",
	"MONO_HTTP_TIMEOUT",
	"MONO_DATA_DIR",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"LOG_FILE",
}

// Load reads the configuration. A missing .env or config.yaml is not an
// error.
func Load() (config Config, err error) {
	// Values already in the environment win over .env
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("MONO_API_URL", "https://api.monobank.ua")
	viper.SetDefault("MONO_HOME_CURRENCY", "UAH")
	viper.SetDefault("MONO_CACHE_TTL", "60s")
	viper.SetDefault("MONO_HTTP_TIMEOUT", "15s")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	for _, key := range keys {
		_ = viper.BindEnv(key)
	}

	dataDir := strings.TrimSpace(viper.GetString("MONO_DATA_DIR"))
	if dataDir == "" {
		if dataDir, err = storage.DefaultDir(); err != nil {
			return
		}
		viper.SetDefault("MONO_DATA_DIR", dataDir)
	}

	viper.AddConfigPath(dataDir)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to decode config: %w", err)
	}

	config.Token = strings.TrimSpace(config.Token)
	config.HomeCurrency = strings.ToUpper(strings.TrimSpace(config.HomeCurrency))
	if config.LogFile == "" {
		config.LogFile = filepath.Join(config.DataDir, "monobar.log")
	}
	if config.CacheTTL <= 0 {
		return config, fmt.Errorf("MONO_CACHE_TTL must be positive, got %s", config.CacheTTL)
	}
	if _, err = config.Home(); err != nil {
		return config, err
	}
	return config, nil
}

// Home resolves the currency totals are expressed in
func (c Config) Home() (model.Currency, error) {
	home, err := currency.ByCode(c.HomeCurrency)
	if err != nil {
		return model.Currency{}, fmt.Errorf("invalid MONO_HOME_CURRENCY: %w", err)
	}
	return home, nil
}
