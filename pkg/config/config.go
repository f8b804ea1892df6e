// Package config loads the speck-go service configuration from a YAML file
// and SPECK_* environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"speck-go/pkg/speck"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Variant    string `mapstructure:"variant"`
	Key        string `mapstructure:"key"` // hex, KeySize bytes
	ListenAddr string `mapstructure:"listen_address"`
	LogDB      string `mapstructure:"log_db"` // empty logs to the console
	LogLevel   string `mapstructure:"log_level"`
	Metrics    bool   `mapstructure:"metrics"`
	ConfigFile string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:    "SPECK-64/128",
		ListenAddr: ":7780",
		LogLevel:   "info",
		Metrics:    true,
		ConfigFile: "speck.yaml",
	}
}

// Load reads configFile (or speck.yaml in the usual places when empty),
// then environment variables, on top of DefaultConfig. A missing file is
// not an error.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("variant", cfg.Variant)
	v.SetDefault("key", cfg.Key)
	v.SetDefault("listen_address", cfg.ListenAddr)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("metrics", cfg.Metrics)
	v.SetDefault("config_file", cfg.ConfigFile)

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(cfg.ConfigFile, ".yaml"))
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/speck-go/")
		v.AddConfigPath("$HOME/.speck-go")
	}
	v.SetEnvPrefix("SPECK") // SPECK_KEY, SPECK_VARIANT, ...
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read %s: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	}
	return cfg, nil
}

// Validate checks that the variant exists, the key matches it and the log
// level is known to zerolog.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log_level %q: %w", c.LogLevel, err)
	}
	v, err := speck.LookupVariant(c.Variant)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Key == "" {
		return errors.New("config: key is required")
	}
	key, err := hex.DecodeString(c.Key)
	if err != nil {
		return fmt.Errorf("config: key is not valid hex: %w", err)
	}
	if len(key) != v.KeySize() {
		return fmt.Errorf("config: %w", &speck.LengthError{Op: "key", Want: v.KeySize(), Got: len(key)})
	}
	return nil
}

// Level returns the configured log level. An empty log_level means info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Cipher builds the configured cipher.
func (c *Config) Cipher() (speck.BlockCipher, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	key, _ := hex.DecodeString(c.Key)
	return speck.NewCipher(c.Variant, key)
}
