// Package config loads Willow's settings from defaults, an optional
// .willow.yaml, WILLOW_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyAPIURL     = "api-url"
	KeyPath       = "path"
	KeyTimeout    = "timeout"
	KeyNotifyFor  = "notify.duration"
	KeyCheerFor   = "notify.cheer-duration"
	KeyLogLevel   = "log.level"
	KeyLogFile    = "log.file"
	ConfigPathEnv = "WILLOW_CONFIG_PATH"
)

// Config is the resolved configuration.
type Config struct {
	APIURL        string
	Path          string
	Timeout       time.Duration
	NotifyFor     time.Duration
	CheerFor      time.Duration
	LogLevel      string
	LogFile       string
	ConfigFileUse string
}

// BasePath is the state directory; it satisfies store.Config.
func (c *Config) BasePath() string {
	return c.Path
}

// New returns a viper instance with Willow's defaults and search paths.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPIURL, "http://localhost:8000")
	v.SetDefault(KeyPath, "~/.willow")
	v.SetDefault(KeyTimeout, "10s")
	v.SetDefault(KeyNotifyFor, "3s")
	v.SetDefault(KeyCheerFor, "4s")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")

	v.SetConfigName(".willow") // .yaml is implicit
	v.SetEnvPrefix("WILLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// BindFlags lets root flags override file and environment values.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyAPIURL, KeyPath, KeyTimeout} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("config: bind %s: %w", key, err)
			}
		}
	}
	return nil
}

// Load reads the config file, if any, and resolves every setting.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	path, err := homedir.Expand(v.GetString(KeyPath))
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeyPath, err)
	}
	cfg := &Config{
		APIURL:        strings.TrimSpace(v.GetString(KeyAPIURL)),
		Path:          filepath.Clean(path),
		Timeout:       v.GetDuration(KeyTimeout),
		NotifyFor:     v.GetDuration(KeyNotifyFor),
		CheerFor:      v.GetDuration(KeyCheerFor),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
		ConfigFileUse: v.ConfigFileUsed(),
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("config: %s is empty", KeyAPIURL)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("config: %s must be positive, got %q", KeyTimeout, v.GetString(KeyTimeout))
	}
	if cfg.NotifyFor <= 0 {
		return nil, fmt.Errorf("config: %s must be positive, got %q", KeyNotifyFor, v.GetString(KeyNotifyFor))
	}
	if cfg.CheerFor <= 0 {
		cfg.CheerFor = cfg.NotifyFor
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.Path, "willow.log")
	} else if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeyLogFile, err)
	}
	return cfg, nil
}
