package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Endpoint     string
	Chain        string
	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration
	CacheTTL     time.Duration
	Out          string
	PgDSN        string
	LogLevel     string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PALLETSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("retries", 0)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("cache-ttl", 5*time.Minute)
	v.SetDefault("out", "./data/pallets.jsonl")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Endpoint:     v.GetString("endpoint"),
		Chain:        v.GetString("chain"),
		Timeout:      v.GetDuration("timeout"),
		Retries:      v.GetInt("retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		CacheTTL:     v.GetDuration("cache-ttl"),
		Out:          v.GetString("out"),
		PgDSN:        v.GetString("pg-dsn"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}
