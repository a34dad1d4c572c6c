package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/mytec0l/ToDoListParser/internal/render"
	"github.com/mytec0l/ToDoListParser/internal/todo"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig   = "TODO_PARSER_CONFIG"
	EnvTodoFile = "TODO_PARSER_FILE"
	EnvLogLevel = "TODO_PARSER_LOG_LEVEL"
	EnvNoColor  = "TODO_PARSER_NO_COLOR"
	EnvSort     = "TODO_PARSER_SORT"
)

// DotEnvFile is read from the working directory for the TODO_PARSER_*
// variables above. Values already set in the process environment win.
const DotEnvFile = ".env"

type Config struct {
	// File settings
	TodoFile string `toml:"todo_file"`
	Editor   string `toml:"editor"`

	// Display settings
	DefaultSort string `toml:"default_sort"`
	WrapWidth   int    `toml:"wrap_width"`
	NoColor     bool   `toml:"no_color"`
	ShowSummary bool   `toml:"show_summary"`

	// UI settings
	Colors      map[string]string `toml:"colors"`
	KeyBindings map[string]string `toml:"keys"`

	// Behavior settings
	AutoRefresh bool          `toml:"auto_refresh"`
	RefreshRate time.Duration `toml:"refresh_rate"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		TodoFile: "todo.txt",
		Editor:   getDefaultEditor(),

		DefaultSort: "none",
		WrapWidth:   80,
		ShowSummary: true,

		Colors: render.DefaultColors(),

		KeyBindings: map[string]string{
			"q": "quit",
			"?": "help",
			"r": "refresh",
			"e": "edit",
			"/": "filter",
			"j": "down",
			"k": "up",
			"g": "top",
			"G": "bottom",
			"0": "sort_none",
			"1": "sort_priority",
			"2": "sort_status",
			"3": "sort_start",
			"4": "sort_due",
		},

		AutoRefresh: true,
		RefreshRate: 100 * time.Millisecond,

		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// LoadConfig returns the defaults overlaid with the first configuration
// file found on the search path and then with the environment.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	for _, path := range searchPaths() {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	if err := config.applyEnv(lookupEnv()); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// LoadConfigFile is like LoadConfig but reads path instead of searching.
// A missing file is an error.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.loadFromFile(path); err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	if err := config.applyEnv(lookupEnv()); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

func searchPaths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{os.Getenv(EnvConfig)}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "todo-parser", "config.toml"))
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "todo-parser", "config.toml"))
	}
	return paths
}

func (c *Config) loadFromFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	c.TodoFile = expandPath(c.TodoFile)
	c.Path = path
	return nil
}

// lookupEnv merges the process environment over the .env file in the
// working directory.
func lookupEnv() func(string) (string, bool) {
	dotenv, err := godotenv.Read(DotEnvFile)
	if err != nil {
		dotenv = nil
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTodoFile); ok && v != "" {
		c.TodoFile = expandPath(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvSort); ok && v != "" {
		c.DefaultSort = v
	}
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		noColor, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvNoColor, v)
		}
		c.NoColor = noColor
	}
	return nil
}

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if _, err := todo.ParseSortMode(c.DefaultSort); err != nil {
		errs = append(errs, fmt.Errorf("default_sort: %w", err))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}
	if c.WrapWidth < 0 {
		errs = append(errs, fmt.Errorf("wrap_width: must not be negative, got %d", c.WrapWidth))
	}
	if c.RefreshRate < 0 {
		errs = append(errs, fmt.Errorf("refresh_rate: must not be negative, got %v", c.RefreshRate))
	}
	return errors.Join(errs...)
}

// SortMode returns the configured default sort mode.
func (c *Config) SortMode() todo.SortMode {
	mode, err := todo.ParseSortMode(c.DefaultSort)
	if err != nil {
		return todo.SortNone
	}
	return mode
}

// Action returns the action bound to key, or "" when the key is unbound.
func (c *Config) Action(key string) string {
	return c.KeyBindings[key]
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func getDefaultEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return "vi"
}
