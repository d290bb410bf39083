/*
Package config manages TOML config for wordfix.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/fix"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Fix    FixConfig    `toml:"fix"`
	Rules  RulesConfig  `toml:"rules"`
	Server ServerConfig `toml:"server"`
}

// FixConfig selects the matching strategy and the record field to correct.
type FixConfig struct {
	Mode      string `toml:"mode"`
	Delimiter string `toml:"delimiter"`
	Field     int    `toml:"field"`
	Normalize string `toml:"normalize"`
}

// RulesConfig holds rule file options.
type RulesConfig struct {
	// Path is used when no rule file is given on the command line.
	Path string `toml:"path"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxTextBytes int `toml:"max_text_bytes"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Fix: FixConfig{
			Mode:      "longest",
			Delimiter: "\t",
			Field:     1,
			Normalize: "none",
		},
		Server: ServerConfig{
			MaxTextBytes: 1 << 20,
		},
	}
}

// Validate checks that every value can be used as is.
func (c *Config) Validate() error {
	var errs []error
	if _, err := fix.ParseMode(c.Fix.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Fix.Delimiter == "" {
		errs = append(errs, errors.New("fix.delimiter must not be empty"))
	}
	if c.Fix.Field < 1 {
		errs = append(errs, fmt.Errorf("fix.field must be 1 or greater, got %d", c.Fix.Field))
	}
	if _, err := utils.Normalizer(c.Fix.Normalize); err != nil {
		errs = append(errs, err)
	}
	if c.Server.MaxTextBytes < 1 {
		errs = append(errs, fmt.Errorf("server.max_text_bytes must be positive, got %d", c.Server.MaxTextBytes))
	}
	return errors.Join(errs...)
}

// GetConfigDir returns the config directory: the user config dir
// (~/.config on Linux), falling back to the executable dir.
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Warnf("Failed to get user config directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	return filepath.Join(configDir, "wordfix"), nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordfix/config.toml
// 3. Builtin defaults
//
// A custom path that does not exist is an error; a missing default file is not.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, err := os.Stat(customConfigPath); err != nil {
			return nil, "", fmt.Errorf("config file %s: %w", customConfigPath, err)
		}
		config, err := LoadConfig(customConfigPath)
		if err != nil {
			return nil, "", err
		}
		log.Debugf("Loaded config from custom path: %s", customConfigPath)
		return config, customConfigPath, nil
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	if !utils.FileExists(defaultPath) {
		log.Debugf("No config at %s, using built-in defaults", defaultPath)
		return DefaultConfig(), "", nil
	}

	config, err := LoadConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// LoadConfig loads from a TOML file. When the file does not decode into
// the typed config, sections that still parse are kept.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := decodeFile(configPath, config); err != nil {
		config, _, err = tryPartialParse(configPath)
		if err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return config, nil
}

// SaveConfig saves into a TOML file, creating its directory.
func SaveConfig(config *Config, configPath string) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "built-in defaults"
	}
	return utils.GetAbsolutePath(configPath)
}
