// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jubalh/vimb/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`
	Map     MapConfig     `toml:"map"`
	General GeneralConfig `toml:"general"`
}

// MapConfig holds settings of the key-mapping engine.
type MapConfig struct {
	// TimeoutLen is the ambiguity timeout in milliseconds: how long the
	// resolver waits on a partial mapping before taking it literally.
	TimeoutLen int `toml:"timeoutlen"`
}

// GeneralConfig holds remaining application settings.
type GeneralConfig struct {
	HomePage string `toml:"home_page"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Map: MapConfig{
			TimeoutLen: DefaultTimeoutLen,
		},
		General: GeneralConfig{
			HomePage: DefaultHomePage,
		},
	}
}

// loadFromFile decodes a TOML config file. A missing file is not an error.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	return cfg, nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Map.TimeoutLen <= 0 {
		c.Map.TimeoutLen = defaults.Map.TimeoutLen
	}
	if c.General.HomePage == "" {
		c.General.HomePage = defaults.General.HomePage
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig merges defaults, the config file and flag overrides. It should
// be called exactly once, from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			if configDir, err := os.UserConfigDir(); err == nil {
				effectivePath = filepath.Join(configDir, AppName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else {
				cfg.merge(fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// merge applies the settings a config file actually set.
func (c *Config) merge(fileCfg *Config) {
	if fileCfg.Logger.LogLevel != "" {
		c.Logger = fileCfg.Logger
	}
	if fileCfg.Map.TimeoutLen > 0 {
		c.Map.TimeoutLen = fileCfg.Map.TimeoutLen
	}
	if fileCfg.General.HomePage != "" {
		c.General.HomePage = fileCfg.General.HomePage
	}
}

// Get returns the loaded configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
