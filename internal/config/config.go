package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/queuewatch/internal/render"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Poll    PollConfig    `mapstructure:"poll"`
	UI      UIConfig      `mapstructure:"ui"`
	Browser BrowserConfig `mapstructure:"browser"`
	Journal JournalConfig `mapstructure:"journal"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig identifies the peer to watch
type ServerConfig struct {
	URL string `mapstructure:"url"` // e.g. http://localhost:8090
}

// PollConfig holds the timer settings of both pollers
type PollConfig struct {
	StatusInterval time.Duration `mapstructure:"status_interval"`
	QueueInterval  time.Duration `mapstructure:"queue_interval"`
	Timeout        time.Duration `mapstructure:"timeout"`         // per fetch, 0 = interval
	InFlightGuard  bool          `mapstructure:"in_flight_guard"` // drop ticks while a fetch is outstanding
	Immediate      bool          `mapstructure:"immediate"`       // poll once at startup
}

// UIConfig holds table presentation settings
type UIConfig struct {
	Alternation   string `mapstructure:"alternation"`     // "continuous" or "plain-only"
	FirstRowStyle string `mapstructure:"first_row_style"` // "dark" or "light"
	Theme         string `mapstructure:"theme"`
}

// BrowserConfig holds the command used to open links
type BrowserConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// JournalConfig holds poll journal settings
type JournalConfig struct {
	Path      string `mapstructure:"path"` // directory; empty keeps the journal in memory
	Retention int    `mapstructure:"retention"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8090",
		},
		Poll: PollConfig{
			StatusInterval: 5 * time.Second,
			QueueInterval:  5 * time.Second,
			InFlightGuard:  true,
			Immediate:      true,
		},
		UI: UIConfig{
			Alternation:   string(render.AlternateContinuous),
			FirstRowStyle: "dark",
			Theme:         "default",
		},
		Browser: BrowserConfig{
			Args: []string{},
		},
		Journal: JournalConfig{
			Path:      defaultDataPath("journal"),
			Retention: 500,
		},
		Logging: LoggingConfig{
			File:  defaultDataPath("queuewatch.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns a path below the OS data directory
func defaultDataPath(name string) string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "queuewatch", name)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "queuewatch", name)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "queuewatch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "queuewatch")
	}
}

// newViper returns a viper instance carrying the defaults, so environment
// overrides apply to every key
func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("QUEUEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", defaults.Server.URL)
	v.SetDefault("poll.status_interval", defaults.Poll.StatusInterval)
	v.SetDefault("poll.queue_interval", defaults.Poll.QueueInterval)
	v.SetDefault("poll.timeout", defaults.Poll.Timeout)
	v.SetDefault("poll.in_flight_guard", defaults.Poll.InFlightGuard)
	v.SetDefault("poll.immediate", defaults.Poll.Immediate)
	v.SetDefault("ui.alternation", defaults.UI.Alternation)
	v.SetDefault("ui.first_row_style", defaults.UI.FirstRowStyle)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("browser.command", defaults.Browser.Command)
	v.SetDefault("browser.args", defaults.Browser.Args)
	v.SetDefault("journal.path", defaults.Journal.Path)
	v.SetDefault("journal.retention", defaults.Journal.Retention)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)
	return v
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML. An empty path writes the default location.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.url", cfg.Server.URL)

	v.Set("poll.status_interval", cfg.Poll.StatusInterval.String())
	v.Set("poll.queue_interval", cfg.Poll.QueueInterval.String())
	v.Set("poll.timeout", cfg.Poll.Timeout.String())
	v.Set("poll.in_flight_guard", cfg.Poll.InFlightGuard)
	v.Set("poll.immediate", cfg.Poll.Immediate)

	v.Set("ui.alternation", cfg.UI.Alternation)
	v.Set("ui.first_row_style", cfg.UI.FirstRowStyle)
	v.Set("ui.theme", cfg.UI.Theme)

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	v.Set("journal.path", cfg.Journal.Path)
	v.Set("journal.retention", cfg.Journal.Retention)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that cannot be expressed by the types alone
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if c.Poll.StatusInterval <= 0 || c.Poll.QueueInterval <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	if c.Poll.Timeout < 0 {
		return fmt.Errorf("poll.timeout must not be negative")
	}
	if _, err := c.StylePolicy(); err != nil {
		return err
	}
	return nil
}

// StylePolicy returns the configured row style policy
func (c *Config) StylePolicy() (render.StylePolicy, error) {
	alt, err := render.ParseAlternation(c.UI.Alternation)
	if err != nil {
		return render.StylePolicy{}, fmt.Errorf("ui.alternation: %w", err)
	}
	first, err := render.ParseFirstStyle(c.UI.FirstRowStyle)
	if err != nil {
		return render.StylePolicy{}, fmt.Errorf("ui.first_row_style: %w", err)
	}
	return render.StylePolicy{Alternation: alt, First: first}, nil
}
