/*
Package config manages TOML config for WordCheck.
*/
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/charmbracelet/log"
)

// Backend names accepted in [advisor].backend.
const (
	BackendModel   = "model"
	BackendMatcher = "matcher"
)

// Config holds the entire config structure
type Config struct {
	Advisor AdvisorConfig `toml:"advisor"`
	Dict    DictConfig    `toml:"dict"`
	Redis   RedisConfig   `toml:"redis"`
	HTTP    HTTPConfig    `toml:"http"`
}

// AdvisorConfig selects and tunes the correction backend.
type AdvisorConfig struct {
	Backend         string `toml:"backend"`
	MaxEditDistance int    `toml:"max_edit_distance"`
	MinWordLength   int    `toml:"min_word_length"`
	Threshold       int    `toml:"threshold"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path     string `toml:"path"`
	MaxWords int    `toml:"max_words"`
}

// RedisConfig configures the custom dictionary store.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
	// TimeoutMS bounds each custom dictionary call.
	TimeoutMS int `toml:"timeout_ms"`
}

// Timeout returns TimeoutMS as a duration.
func (r RedisConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutMS) * time.Millisecond
}

// HTTPConfig configures the HTTP API.
type HTTPConfig struct {
	Addr string `toml:"addr"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordcheck")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordcheck")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
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
// 2. Default path: [UserConfigDir]/wordcheck/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
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

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Advisor: AdvisorConfig{
			Backend:         BackendModel,
			MaxEditDistance: 2,
			MinWordLength:   2,
			Threshold:       0,
		},
		Dict: DictConfig{
			Path:     "data/",
			MaxWords: 50000,
		},
		Redis: RedisConfig{
			Enabled:   false,
			Addr:      "localhost:6379",
			DB:        0,
			Key:       "wordcheck:custom_dict",
			TimeoutMS: 2000,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
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

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse keeps every section that still decodes.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "advisor"); ok {
		extractAdvisorConfig(section, &config.Advisor)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "redis"); ok {
		extractRedisConfig(section, &config.Redis)
	}
	if section, ok := utils.ExtractSection(tempConfig, "http"); ok {
		if val, ok := utils.ExtractString(section, "addr"); ok {
			config.HTTP.Addr = val
		}
	}
	config.normalize()
	return config, nil
}

func extractAdvisorConfig(data map[string]any, advisor *AdvisorConfig) {
	if val, ok := utils.ExtractString(data, "backend"); ok {
		advisor.Backend = val
	}
	if val, ok := utils.ExtractInt64(data, "max_edit_distance"); ok {
		advisor.MaxEditDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_length"); ok {
		advisor.MinWordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "threshold"); ok {
		advisor.Threshold = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
}

func extractRedisConfig(data map[string]any, redis *RedisConfig) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		redis.Enabled = val
	}
	if val, ok := utils.ExtractString(data, "addr"); ok {
		redis.Addr = val
	}
	if val, ok := utils.ExtractString(data, "password"); ok {
		redis.Password = val
	}
	if val, ok := utils.ExtractInt64(data, "db"); ok {
		redis.DB = val
	}
	if val, ok := utils.ExtractString(data, "key"); ok {
		redis.Key = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		redis.TimeoutMS = val
	}
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	switch c.Advisor.Backend {
	case BackendModel, BackendMatcher:
	default:
		log.Warnf("Unknown backend %q, using %q", c.Advisor.Backend, def.Advisor.Backend)
		c.Advisor.Backend = def.Advisor.Backend
	}
	if c.Advisor.MaxEditDistance < 1 {
		c.Advisor.MaxEditDistance = def.Advisor.MaxEditDistance
	}
	if c.Advisor.MinWordLength < 1 {
		c.Advisor.MinWordLength = def.Advisor.MinWordLength
	}
	if c.Redis.TimeoutMS <= 0 {
		c.Redis.TimeoutMS = def.Redis.TimeoutMS
	}
	if c.Dict.MaxWords < 0 {
		c.Dict.MaxWords = 0
	}
}

// ApplyEnv overrides values from REDIS_ADDR, REDIS_PASSWORD, REDIS_DB and HTTP_ADDR.
// Setting REDIS_ADDR also enables the store.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = i
		} else {
			log.Warnf("Ignoring invalid REDIS_DB %q", v)
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
}

// RebuildConfigFile overwrites the default config.toml with built-in
// defaults and returns its path.
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := SaveConfig(DefaultConfig(), defaultPath); err != nil {
		return "", err
	}
	return defaultPath, nil
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
