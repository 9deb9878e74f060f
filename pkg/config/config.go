/*
Package config manages TOML config for wordfind.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordfind/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Search SearchConfig `toml:"search"`
	CLI    CliConfig    `toml:"cli"`
	Server ServerConfig `toml:"server"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path         string `toml:"path"`
	MinWordLen   int    `toml:"min_word_len"`
	ShowProgress bool   `toml:"show_progress"`
}

// SearchConfig holds finder options.
type SearchConfig struct {
	MaxInputLen int `toml:"max_input_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ShowTiming  bool `toml:"show_timing"`
	MinGroupLen int  `toml:"min_group_len"`
	NoFilter    bool `toml:"no_filter"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxQueryLen int `toml:"max_query_len"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Path:         "words.txt",
			MinWordLen:   3,
			ShowProgress: true,
		},
		Search: SearchConfig{
			MaxInputLen: 16,
		},
		CLI: CliConfig{
			ShowTiming:  true,
			MinGroupLen: 1,
			NoFilter:    false,
		},
		Server: ServerConfig{
			MaxQueryLen: 16,
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml.
// The directory comes from utils.PathResolver: $XDG_CONFIG_HOME/wordfind or
// ~/.config/wordfind, falling back to other writable locations.
func GetDefaultConfigPath() (string, error) {
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Errorf("Failed to initialize path resolver: %v", err)
		return "", err
	}
	return pathResolver.GetConfigPath(FileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordfind/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config.normalize(), nil
}

// tryPartialParse keeps every value of the right type and defaults the rest
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		if val, ok := utils.ExtractInt64(section, "max_input_len"); ok {
			config.Search.MaxInputLen = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_query_len"); ok {
			config.Server.MaxQueryLen = val
		}
	}
	return config.normalize(), nil
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		dict.MinWordLen = val
	}
	if val, ok := utils.ExtractBool(data, "show_progress"); ok {
		dict.ShowProgress = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "show_timing"); ok {
		cli.ShowTiming = val
	}
	if val, ok := utils.ExtractInt64(data, "min_group_len"); ok {
		cli.MinGroupLen = val
	}
	if val, ok := utils.ExtractBool(data, "no_filter"); ok {
		cli.NoFilter = val
	}
}

// normalize replaces out of range values with their defaults.
func (c *Config) normalize() *Config {
	defaults := DefaultConfig()
	if c.Dict.MinWordLen < 1 {
		log.Warnf("Invalid min_word_len %d, using %d", c.Dict.MinWordLen, defaults.Dict.MinWordLen)
		c.Dict.MinWordLen = defaults.Dict.MinWordLen
	}
	if c.Search.MaxInputLen < 0 {
		c.Search.MaxInputLen = defaults.Search.MaxInputLen
	}
	if c.Server.MaxQueryLen < 0 {
		c.Server.MaxQueryLen = defaults.Server.MaxQueryLen
	}
	if c.CLI.MinGroupLen < 1 {
		c.CLI.MinGroupLen = defaults.CLI.MinGroupLen
	}
	return c
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
