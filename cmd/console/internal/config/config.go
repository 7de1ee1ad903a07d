// Package config provides configuration management for the console service.
// It holds the settings the admin front-end reads at startup (branding, tab
// mode, backend API location, login endpoints, sidebar behavior) and loads
// them from YAML with centralized defaults and no environment overrides.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/thalib/console/cmd/console/internal/constants"
	"github.com/thalib/console/cmd/console/internal/logging"
)

const (
	// VersionMajor is the major version number
	VersionMajor = 1
	// VersionMinor is the minor version number
	VersionMinor = 0
)

// Version returns the version string in format {major}.{minor}
func Version() string {
	return fmt.Sprintf("%d.%d", VersionMajor, VersionMinor)
}

// Defaults contains all default configuration values
// centralized in one place to avoid hardcoded literals
var Defaults = struct {
	Name    string
	Footer  string
	Debug   bool
	TabMode struct {
		Enable         bool
		AllowDuplicate bool
	}
	API struct {
		Host    string
		Path    string
		Timeout int
	}
	Login struct {
		Check  string
		SSO    string
		Login  string
		Logout string
	}
	Sidebar struct {
		Collapsible    bool
		AutoMenuSwitch bool
	}
	Server struct {
		Host   string
		Port   int
		Prefix string
	}
	Logging struct {
		Level    string
		Format   string
		Path     string
		Truncate bool
	}
	ConfigPath string
}{
	Name:   "OOXX管理后台",
	Footer: `<a target="_blank" href="https://github.com/atlantis1024/react-step-by-step">Victor Zhang</a>版权所有 © 2017`,
	Debug:  false,
	TabMode: struct {
		Enable         bool
		AllowDuplicate bool
	}{
		Enable:         false,
		AllowDuplicate: false, // one tab per menu item
	},
	API: struct {
		Host    string
		Path    string
		Timeout int
	}{
		Host:    "http://localhost:9527", // empty means same origin; otherwise the backend must support CORS
		Path:    "/api",
		Timeout: 15000, // milliseconds
	},
	Login: struct {
		Check  string
		SSO    string
		Login  string
		Logout string
	}{
		Check:  "/check",
		SSO:    "", // empty disables single sign-on
		Login:  "/login",
		Logout: "/logout",
	},
	Sidebar: struct {
		Collapsible    bool
		AutoMenuSwitch bool
	}{
		Collapsible:    true,
		AutoMenuSwitch: true, // only one top-level menu expanded at a time
	},
	Server: struct {
		Host   string
		Port   int
		Prefix string
	}{
		Host:   "0.0.0.0",
		Port:   9530,
		Prefix: "",
	},
	Logging: struct {
		Level    string
		Format   string
		Path     string
		Truncate bool
	}{
		Level:    "info",
		Format:   "simple",
		Path:     "",
		Truncate: false,
	},
	ConfigPath: constants.DefaultConfigPath,
}

// AppConfig holds the application configuration.
// It is designed to be immutable after initialization.
type AppConfig struct {
	Name    string        `mapstructure:"name"`
	Footer  string        `mapstructure:"footer"` // raw HTML, embedded verbatim
	Debug   bool          `mapstructure:"debug"`  // collaborators use mock data instead of the backend
	TabMode TabModeConfig `mapstructure:"tab_mode"`
	API     APIConfig     `mapstructure:"api"`
	Login   LoginConfig   `mapstructure:"login"`
	Sidebar SidebarConfig `mapstructure:"sidebar"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`

	// apiPath is computed by APIPath on first use and never invalidated.
	apiPathOnce sync.Once
	apiPath     string
}

// TabModeConfig holds tab navigation configuration.
type TabModeConfig struct {
	Enable         bool `mapstructure:"enable"`
	AllowDuplicate bool `mapstructure:"allow_duplicate"`
}

// APIConfig holds the location of the backend API.
type APIConfig struct {
	Host    string `mapstructure:"host"`    // scheme://host[:port], empty for same origin
	Path    string `mapstructure:"path"`    // base path of ajax requests
	Timeout int    `mapstructure:"timeout"` // request timeout in milliseconds
}

// LoginConfig holds login related URL paths.
type LoginConfig struct {
	Check  string `mapstructure:"check"`  // returns the current user, tried before any login
	SSO    string `mapstructure:"sso"`    // single sign-on URL, empty when not used
	Login  string `mapstructure:"login"`  // submit target of the built-in login form
	Logout string `mapstructure:"logout"` // browser navigates here on logout
}

// SidebarConfig holds sidebar behavior.
type SidebarConfig struct {
	Collapsible    bool `mapstructure:"collapsible"`
	AutoMenuSwitch bool `mapstructure:"auto_menu_switch"`
}

// ServerConfig holds the listen address of the console service.
type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Prefix string `mapstructure:"prefix"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`    // debug, info, warn, error
	Format   string `mapstructure:"format"`   // simple, console, json
	Path     string `mapstructure:"path"`     // log directory; empty logs to stdout only
	Truncate bool   `mapstructure:"truncate"` // empty the log file at startup
}

var globalConfig *AppConfig

// New returns a configuration holding the default values.
// It does not touch the global instance returned by Get.
func New() *AppConfig {
	return &AppConfig{
		Name:   Defaults.Name,
		Footer: Defaults.Footer,
		Debug:  Defaults.Debug,
		TabMode: TabModeConfig{
			Enable:         Defaults.TabMode.Enable,
			AllowDuplicate: Defaults.TabMode.AllowDuplicate,
		},
		API: APIConfig{
			Host:    Defaults.API.Host,
			Path:    Defaults.API.Path,
			Timeout: Defaults.API.Timeout,
		},
		Login: LoginConfig{
			Check:  Defaults.Login.Check,
			SSO:    Defaults.Login.SSO,
			Login:  Defaults.Login.Login,
			Logout: Defaults.Login.Logout,
		},
		Sidebar: SidebarConfig{
			Collapsible:    Defaults.Sidebar.Collapsible,
			AutoMenuSwitch: Defaults.Sidebar.AutoMenuSwitch,
		},
		Server: ServerConfig{
			Host:   Defaults.Server.Host,
			Port:   Defaults.Server.Port,
			Prefix: Defaults.Server.Prefix,
		},
		Logging: LoggingConfig{
			Level:    Defaults.Logging.Level,
			Format:   Defaults.Logging.Format,
			Path:     Defaults.Logging.Path,
			Truncate: Defaults.Logging.Truncate,
		},
	}
}

// Load initializes and loads the application configuration.
// It reads from YAML config files only.
// No environment variable overrides are supported.
func Load(configPath string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("name", Defaults.Name)
	v.SetDefault("footer", Defaults.Footer)
	v.SetDefault("debug", Defaults.Debug)
	v.SetDefault("tab_mode.enable", Defaults.TabMode.Enable)
	v.SetDefault("tab_mode.allow_duplicate", Defaults.TabMode.AllowDuplicate)
	v.SetDefault("api.host", Defaults.API.Host)
	v.SetDefault("api.path", Defaults.API.Path)
	v.SetDefault("api.timeout", Defaults.API.Timeout)
	v.SetDefault("login.check", Defaults.Login.Check)
	v.SetDefault("login.sso", Defaults.Login.SSO)
	v.SetDefault("login.login", Defaults.Login.Login)
	v.SetDefault("login.logout", Defaults.Login.Logout)
	v.SetDefault("sidebar.collapsible", Defaults.Sidebar.Collapsible)
	v.SetDefault("sidebar.auto_menu_switch", Defaults.Sidebar.AutoMenuSwitch)
	v.SetDefault("server.host", Defaults.Server.Host)
	v.SetDefault("server.port", Defaults.Server.Port)
	v.SetDefault("server.prefix", Defaults.Server.Prefix)
	v.SetDefault("logging.level", Defaults.Logging.Level)
	v.SetDefault("logging.format", Defaults.Logging.Format)
	v.SetDefault("logging.path", Defaults.Logging.Path)
	v.SetDefault("logging.truncate", Defaults.Logging.Truncate)

	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(Defaults.ConfigPath)
	}

	// Read config file (optional - continue if the default file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	} else if err := applyNulls(v); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkTypes(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	globalConfig = cfg

	return cfg, nil
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"simple": true, "console": true, "json": true}
)

// validate checks value ranges and applies defaults for empty fields.
func validate(cfg *AppConfig) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	// Normalize prefix: add leading slash if missing
	if cfg.Server.Prefix != "" && !strings.HasPrefix(cfg.Server.Prefix, "/") {
		cfg.Server.Prefix = "/" + cfg.Server.Prefix
	}

	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = Defaults.API.Timeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = Defaults.Logging.Level
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging.level '%s', must be one of: debug, info, warn, error", cfg.Logging.Level)
	}

	if cfg.Logging.Format == "" {
		cfg.Logging.Format = Defaults.Logging.Format
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging.format '%s', must be one of: simple, console, json", cfg.Logging.Format)
	}

	return nil
}

// Get returns the global configuration instance.
// This is thread-safe as the config is immutable after Load().
func Get() *AppConfig {
	if globalConfig == nil {
		panic("configuration not loaded - call config.Load() first")
	}
	return globalConfig
}

// IsCrossDomain reports whether API requests go to a different origin than
// the page. The backend has to support CORS in that case.
func (c *AppConfig) IsCrossDomain() bool {
	if c.API.Host != "" {
		logging.Debug("API requests are cross-domain")
		return true
	}
	return false
}

// IsSSO reports whether login is delegated to a single sign-on service.
func (c *AppConfig) IsSSO() bool {
	return c.Login.SSO != ""
}

// APIPath returns the base path of API requests: the host without trailing
// slashes and the path without surrounding slashes, joined by a single "/".
//
// The result is computed on the first call and cached for the lifetime of
// the value; later changes to API.Host or API.Path are not picked up.
func (c *AppConfig) APIPath() string {
	c.apiPathOnce.Do(func() {
		host := ""
		if c.IsCrossDomain() {
			host = trimTrailingSlashes(c.API.Host)
		}
		c.apiPath = joinAPIPath(host, trimSlashes(c.API.Path))
	})
	return c.apiPath
}

// APIEndpoint returns the URL of endpoint p under APIPath.
// p is appended as is, so it should start with "/".
func (c *AppConfig) APIEndpoint(p string) string {
	return c.APIPath() + p
}

// APITimeout returns API.Timeout as a duration.
func (c *AppConfig) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Millisecond
}

// SSORedirect returns the SSO URL the browser is sent to, with the
// query-escaped returnTo address appended. Empty when SSO is off.
func (c *AppConfig) SSORedirect(returnTo string) string {
	if !c.IsSSO() {
		return ""
	}
	return c.Login.SSO + url.QueryEscape(returnTo)
}
