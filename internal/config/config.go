package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Network  NetworkConfig  `mapstructure:"network" yaml:"network"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	UI       UIConfig       `mapstructure:"ui" yaml:"ui"`
}

// APIConfig describes the allanime GraphQL endpoint
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`   // Site URL, also used as Referer
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`   // GraphQL API host
	PageSize int    `mapstructure:"page_size" yaml:"page_size"` // Titles per page
}

// NetworkConfig controls the HTTP client
type NetworkConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent" yaml:"user_agent"`
	Debug      bool          `mapstructure:"debug" yaml:"debug"`
}

// DatabaseConfig controls the sqlite session database
type DatabaseConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	MaxConnections int    `mapstructure:"max_connections" yaml:"max_connections"`
	WALMode        bool   `mapstructure:"wal_mode" yaml:"wal_mode"`
	AutoVacuum     bool   `mapstructure:"auto_vacuum" yaml:"auto_vacuum"`
}

// LoggingConfig controls the slog logger
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"` // text or json
	File       string `mapstructure:"file" yaml:"file"`
	Color      bool   `mapstructure:"color" yaml:"color"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// UIConfig holds presentation defaults
type UIConfig struct {
	Dub        bool   `mapstructure:"dub" yaml:"dub"`                 // Start in dub mode
	SearchType string `mapstructure:"search_type" yaml:"search_type"` // Initial search type
	// Clipboard command used instead of the system clipboard, text is piped to stdin
	ClipboardCommand string `mapstructure:"clipboard_command" yaml:"clipboard_command"`
}

const appName = "aniseek"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "https://allanime.to",
			Endpoint: "https://api.allanime.day",
			PageSize: 20,
		},
		Network: NetworkConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
		},
		Database: DatabaseConfig{
			Path:           filepath.Join(getDataDir(), appName, appName+".db"),
			MaxConnections: 4,
			WALMode:        true,
			AutoVacuum:     true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			File:       filepath.Join(getStateDir(), appName, appName+".log"),
			Color:      true,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
		UI: UIConfig{
			Dub:        false,
			SearchType: "text",
		},
	}
}

// Load reads the configuration file (if any), environment and defaults.
// An empty cfgFile means the default location is used.
func Load(cfgFile string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(getConfigDir(), appName))
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine; an explicit --config must exist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}

// Validate checks values that would otherwise fail far from their source
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("api.endpoint is required")
	}
	if c.API.PageSize <= 0 {
		return fmt.Errorf("api.page_size must be positive, got %d", c.API.PageSize)
	}
	switch c.UI.SearchType {
	case "", "text", "new", "popular", "random":
	default:
		return fmt.Errorf("ui.search_type must be one of text, new, popular, random, got %q", c.UI.SearchType)
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.endpoint", d.API.Endpoint)
	v.SetDefault("api.page_size", d.API.PageSize)

	v.SetDefault("network.timeout", d.Network.Timeout)
	v.SetDefault("network.max_retries", d.Network.MaxRetries)
	v.SetDefault("network.user_agent", d.Network.UserAgent)
	v.SetDefault("network.debug", d.Network.Debug)

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.max_connections", d.Database.MaxConnections)
	v.SetDefault("database.wal_mode", d.Database.WALMode)
	v.SetDefault("database.auto_vacuum", d.Database.AutoVacuum)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.color", d.Logging.Color)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("ui.dub", d.UI.Dub)
	v.SetDefault("ui.search_type", d.UI.SearchType)
	v.SetDefault("ui.clipboard_command", d.UI.ClipboardCommand)
}

// WriteDefault writes the default configuration as YAML to path.
// Existing files are left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the config file location used when --config is not set
func DefaultConfigPath() string {
	return filepath.Join(getConfigDir(), appName, "config.yaml")
}

// InitializeDirs creates the config, data and state directories
func InitializeDirs() error {
	for _, dir := range []string{getConfigDir(), getDataDir(), getStateDir()} {
		if err := os.MkdirAll(filepath.Join(dir, appName), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

func getConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(homeDir(), ".config")
}

func getDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".local", "state")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
