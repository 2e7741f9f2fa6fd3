// Package config resolves changewizard settings from defaults, the global and
// project config files, and CHANGEWIZARD_* environment variables.
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

// EnvPrefix namespaces environment overrides, e.g. CHANGEWIZARD_SERVER_BASE_URL.
const EnvPrefix = "CHANGEWIZARD"

// ErrExists is returned by Write when the target file is already present.
var ErrExists = errors.New("config: file already exists")

// DefaultSessionCookie is the cookie the backend issues after login.
const DefaultSessionCookie = "changekeeper_session"

// Config holds all configuration values for changewizard.
type Config struct {
	Server Server `mapstructure:"server" yaml:"server"`
	Draft  Draft  `mapstructure:"draft" yaml:"draft"`
	UI     UI     `mapstructure:"ui" yaml:"ui"`
	Log    Log    `mapstructure:"log" yaml:"log"`
	Schema Schema `mapstructure:"schema" yaml:"schema"`
}

// Server describes the change-record backend.
type Server struct {
	BaseURL       string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	SessionCookie string        `mapstructure:"session_cookie" yaml:"session_cookie"`
	Session       string        `mapstructure:"session" yaml:"session,omitempty"`
}

// Draft configures local draft persistence.
type Draft struct {
	Path     string        `mapstructure:"path" yaml:"path,omitempty"`
	Autosave time.Duration `mapstructure:"autosave" yaml:"autosave"`
}

// UI configures the terminal front end.
type UI struct {
	ThemeVariant string `mapstructure:"theme_variant" yaml:"theme_variant"`
}

// Log configures the zap logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// Schema points the form pipeline at alternative definitions. Empty values
// select the embedded documents.
type Schema struct {
	OpenAPI string `mapstructure:"openapi" yaml:"openapi,omitempty"`
	Layout  string `mapstructure:"layout" yaml:"layout,omitempty"`
}

// keys lists every setting bound to an environment variable.
var keys = []string{
	"server.base_url",
	"server.timeout",
	"server.session_cookie",
	"server.session",
	"draft.path",
	"draft.autosave",
	"ui.theme_variant",
	"log.level",
	"log.file",
	"schema.openapi",
	"schema.layout",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL:       "http://localhost:8000",
			Timeout:       30 * time.Second,
			SessionCookie: DefaultSessionCookie,
		},
		Draft: Draft{Autosave: time.Second},
		UI:    UI{ThemeVariant: "default"},
		Log:   Log{Level: "info"},
	}
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults.
// Command flags are applied on top by the caller.
func Load() (*Config, error) {
	return LoadFiles(GlobalPath(), ProjectPath())
}

// LoadFiles is Load with explicit file locations. Missing files are skipped.
func LoadFiles(globalPath, projectPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("server.base_url", def.Server.BaseURL)
	v.SetDefault("server.timeout", def.Server.Timeout)
	v.SetDefault("server.session_cookie", def.Server.SessionCookie)
	v.SetDefault("server.session", "")
	v.SetDefault("draft.path", "")
	v.SetDefault("draft.autosave", def.Draft.Autosave)
	v.SetDefault("ui.theme_variant", def.UI.ThemeVariant)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("schema.openapi", "")
	v.SetDefault("schema.layout", "")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return nil, fmt.Errorf("config: binding %s env: %w", key, err)
		}
	}

	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading global config: %w", err)
		}
	}

	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the wizard cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.BaseURL) == "" {
		return errors.New("config: server.base_url is required")
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("config: server.timeout must not be negative, got %s", c.Server.Timeout)
	}
	if c.Draft.Autosave < 0 {
		return fmt.Errorf("config: draft.autosave must not be negative, got %s", c.Draft.Autosave)
	}
	return nil
}

// EnvName returns the environment variable bound to key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns ~/.config/changewizard/config.yaml or
// $XDG_CONFIG_HOME/changewizard/config.yaml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "changewizard", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "changewizard", "config.yaml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "changewizard.yaml"
}

// StateDir returns $XDG_STATE_HOME/changewizard, falling back to
// ~/.local/state/changewizard.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "changewizard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "changewizard")
}

// Write marshals cfg to path, creating parent directories. An existing file
// is only replaced when force is set.
func Write(path string, cfg Config, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
