// Package config loads the application configuration from viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyTMDBAPIKey        = "tmdb.api_key"
	KeyTMDBLanguage      = "tmdb.language"
	KeyTMDBRegion        = "tmdb.region"
	KeyTMDBRatePerSecond = "tmdb.rate_per_second"
	KeyTMDBBaseURL       = "tmdb.base_url"
	KeyTMDBImageBaseURL  = "tmdb.image_base_url"
	KeyOMDBAPIKey        = "omdb.api_key"
	KeyOMDBRatePerSecond = "omdb.rate_per_second"
	KeyOMDBBaseURL       = "omdb.base_url"
	KeyHTTPTimeout       = "http.timeout"
	KeyHTTPRetryAttempts = "http.retry_attempts"
	KeyCastLimit         = "catalog.cast_limit"
	KeyServerAddr        = "server.addr"
	KeyLogLevel          = "log.level"
	KeyLogFile           = "log.file"
)

// ErrMissingTMDBKey is returned when no TMDB API key is configured.
var ErrMissingTMDBKey = errors.New("TMDB API key is required (set tmdb.api_key in config.yaml or TMDB_API_KEY)")

// Config is the resolved application configuration. It is not modified after Load.
type Config struct {
	TMDB   TMDBConfig
	OMDB   OMDBConfig
	HTTP   HTTPConfig
	Server ServerConfig
	Log    LogConfig

	// CastLimit caps cast lists; 0 means unlimited.
	CastLimit int
}

type TMDBConfig struct {
	APIKey        string
	Language      string
	Region        string
	RatePerSecond int
	// BaseURL and ImageBaseURL override the public endpoints when set.
	BaseURL      string
	ImageBaseURL string
}

type OMDBConfig struct {
	APIKey        string
	RatePerSecond int
	BaseURL       string
}

// Enabled reports whether secondary ratings can be fetched.
func (c OMDBConfig) Enabled() bool {
	return c.APIKey != ""
}

type HTTPConfig struct {
	Timeout       time.Duration
	RetryAttempts int
}

type ServerConfig struct {
	Addr string
}

type LogConfig struct {
	Level string
	File  string
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) error {
	v.SetDefault(KeyTMDBLanguage, "en-US")
	v.SetDefault(KeyTMDBRegion, "US")
	v.SetDefault(KeyTMDBRatePerSecond, 4)
	v.SetDefault(KeyOMDBRatePerSecond, 1)
	v.SetDefault(KeyHTTPTimeout, "10s")
	v.SetDefault(KeyHTTPRetryAttempts, 3)
	v.SetDefault(KeyCastLimit, 10)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider keys keep their conventional names
	if err := v.BindEnv(KeyTMDBAPIKey, "TMDB_API_KEY"); err != nil {
		return fmt.Errorf("bind TMDB_API_KEY: %w", err)
	}
	if err := v.BindEnv(KeyOMDBAPIKey, "OMDB_API_KEY"); err != nil {
		return fmt.Errorf("bind OMDB_API_KEY: %w", err)
	}
	return nil
}

// ReadFile reads config.yaml from the working directory (or path, if given).
// A missing default file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves a Config from v. Defaults must already be registered.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		TMDB: TMDBConfig{
			APIKey:        strings.TrimSpace(v.GetString(KeyTMDBAPIKey)),
			Language:      v.GetString(KeyTMDBLanguage),
			Region:        strings.ToUpper(v.GetString(KeyTMDBRegion)),
			RatePerSecond: v.GetInt(KeyTMDBRatePerSecond),
			BaseURL:       v.GetString(KeyTMDBBaseURL),
			ImageBaseURL:  v.GetString(KeyTMDBImageBaseURL),
		},
		OMDB: OMDBConfig{
			APIKey:        strings.TrimSpace(v.GetString(KeyOMDBAPIKey)),
			RatePerSecond: v.GetInt(KeyOMDBRatePerSecond),
			BaseURL:       v.GetString(KeyOMDBBaseURL),
		},
		HTTP: HTTPConfig{
			Timeout:       v.GetDuration(KeyHTTPTimeout),
			RetryAttempts: v.GetInt(KeyHTTPRetryAttempts),
		},
		Server: ServerConfig{
			Addr: v.GetString(KeyServerAddr),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
		CastLimit: v.GetInt(KeyCastLimit),
	}

	if cfg.TMDB.APIKey == "" {
		return nil, ErrMissingTMDBKey
	}
	if cfg.HTTP.Timeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %q", KeyHTTPTimeout, v.GetString(KeyHTTPTimeout))
	}
	if cfg.HTTP.RetryAttempts < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", KeyHTTPRetryAttempts, cfg.HTTP.RetryAttempts)
	}
	if cfg.CastLimit < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", KeyCastLimit, cfg.CastLimit)
	}
	return cfg, nil
}
