package config

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Lookup  LookupConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	AppEnv           string
	Port             string
	ShutdownTimeout  time.Duration
	FetchLimitPerMin int
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type LookupConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

// LoadEnv reads the service configuration from the process environment.
// Empty values count as unset. Malformed numeric or boolean values fall back
// to their defaults.
func LoadEnv() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "5000")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOOKUP_URL", "https://world.openfoodfacts.org")
	v.SetDefault("LOOKUP_USER_AGENT", "StockRoom/1.0 (inventory service)")

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:           v.GetString("APP_ENV"),
			Port:             v.GetString("PORT"),
			ShutdownTimeout:  getDuration(v, "SHUTDOWN_TIMEOUT", 10*time.Second),
			FetchLimitPerMin: getInt(v, "FETCH_LIMIT_PER_MIN", 30),
		},
		Logger: LoggerConfig{
			Level:    v.GetString("LOGGER_LEVEL"),
			Encoding: v.GetString("LOGGER_ENCODING"),
		},
		Lookup: LookupConfig{
			BaseURL:   v.GetString("LOOKUP_URL"),
			Timeout:   getDuration(v, "LOOKUP_TIMEOUT", 5*time.Second),
			UserAgent: v.GetString("LOOKUP_USER_AGENT"),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
			Token:   v.GetString("METRICS_TOKEN"),
		},
	}

	if cfg.Logger.Encoding == "" {
		cfg.Logger.Encoding = "json"
		if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
			cfg.Logger.Encoding = "console"
		}
	}

	return cfg
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func getInt(v *viper.Viper, key string, fallback int) int {
	if i, err := strconv.Atoi(v.GetString(key)); err == nil {
		return i
	}
	return fallback
}

func getBool(v *viper.Viper, key string, fallback bool) bool {
	if b, err := strconv.ParseBool(v.GetString(key)); err == nil {
		return b
	}
	return fallback
}

func getDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(v.GetString(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}
