package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thalib/console/cmd/console/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func TestVersion(t *testing.T) {
	want := fmt.Sprintf("%d.%d", VersionMajor, VersionMinor)
	if got := Version(); got != want {
		t.Errorf("Version() = %q, want %q", got, want)
	}
}

// TestLoad_Defaults tests that an empty file yields the default values
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Name != Defaults.Name {
		t.Errorf("Name = %q, want %q", cfg.Name, Defaults.Name)
	}
	if cfg.Footer != Defaults.Footer {
		t.Errorf("Footer = %q, want %q", cfg.Footer, Defaults.Footer)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.TabMode.Enable || cfg.TabMode.AllowDuplicate {
		t.Errorf("TabMode = %+v, want all false", cfg.TabMode)
	}
	if cfg.API.Host != "http://localhost:9527" || cfg.API.Path != "/api" || cfg.API.Timeout != 15000 {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Login.Check != "/check" || cfg.Login.SSO != "" || cfg.Login.Login != "/login" || cfg.Login.Logout != "/logout" {
		t.Errorf("Login = %+v", cfg.Login)
	}
	if !cfg.Sidebar.Collapsible || !cfg.Sidebar.AutoMenuSwitch {
		t.Errorf("Sidebar = %+v, want all true", cfg.Sidebar)
	}
	if cfg.Server.Port != Defaults.Server.Port {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, Defaults.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "simple" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_Overrides(t *testing.T) {
	content := `name: Ops Console
footer: "<b>Ops</b>"
debug: true
tab_mode:
  enable: true
  allow_duplicate: true
api:
  host: ""
  path: /backend/
  timeout: 3000
login:
  sso: https://sso.example.com/?next=
sidebar:
  collapsible: false
  auto_menu_switch: false
server:
  port: 8080
  prefix: admin
logging:
  level: debug
  format: json
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Name != "Ops Console" || cfg.Footer != "<b>Ops</b>" || !cfg.Debug {
		t.Errorf("branding = %q %q %v", cfg.Name, cfg.Footer, cfg.Debug)
	}
	if !cfg.TabMode.Enable || !cfg.TabMode.AllowDuplicate {
		t.Errorf("TabMode = %+v", cfg.TabMode)
	}
	if cfg.IsCrossDomain() {
		t.Error("empty host should not be cross-domain")
	}
	if got := cfg.APIPath(); got != "/backend" {
		t.Errorf("APIPath() = %q, want /backend", got)
	}
	if cfg.API.Timeout != 3000 {
		t.Errorf("API.Timeout = %d", cfg.API.Timeout)
	}
	if !cfg.IsSSO() {
		t.Error("sso should be enabled")
	}
	if cfg.Login.Check != "/check" {
		t.Errorf("Login.Check = %q, want default", cfg.Login.Check)
	}
	if cfg.Sidebar.Collapsible || cfg.Sidebar.AutoMenuSwitch {
		t.Errorf("Sidebar = %+v", cfg.Sidebar)
	}
	if cfg.Server.Prefix != "/admin" {
		t.Errorf("Server.Prefix = %q, want /admin", cfg.Server.Prefix)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_SetsGlobal(t *testing.T) {
	cfg, err := Load(writeConfig(t, "name: global\n"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if Get() != cfg {
		t.Error("Get() should return the instance returned by Load()")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "api: [unterminated\n"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_TypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"string debug", "debug: \"yes\"\n", "debug"},
		{"numeric host", "api:\n  host: 42\n", "api.host"},
		{"string timeout", "api:\n  timeout: soon\n", "api.timeout"},
		{"numeric sso", "login:\n  sso: 1\n", "login.sso"},
		{"string collapsible", "sidebar:\n  collapsible: \"no\"\n", "sidebar.collapsible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected type error")
			}

			var typeErr *ConfigTypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected *ConfigTypeError, got %T: %v", err, err)
			}
			if typeErr.Key != tt.key {
				t.Errorf("Key = %q, want %q", typeErr.Key, tt.key)
			}
		})
	}
}

// TestValidate_PortBoundary tests validation at port boundaries
func TestValidate_PortBoundary(t *testing.T) {
	tests := []struct {
		name      string
		port      int
		wantError bool
	}{
		{"port 0 (invalid)", 0, true},
		{"port -1 (invalid)", -1, true},
		{"port 1 (valid)", 1, false},
		{"port 65535 (valid)", 65535, false},
		{"port 65536 (invalid)", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, fmt.Sprintf("server:\n  port: %d\n", tt.port)))
			if gotError := err != nil; gotError != tt.wantError {
				t.Errorf("port %d: error = %v, wantError = %v", tt.port, err, tt.wantError)
			}
		})
	}
}

func TestValidate_TimeoutFallback(t *testing.T) {
	cfg, err := Load(writeConfig(t, "api:\n  timeout: 0\n"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.API.Timeout != Defaults.API.Timeout {
		t.Errorf("API.Timeout = %d, want %d", cfg.API.Timeout, Defaults.API.Timeout)
	}
}

func TestValidate_Logging(t *testing.T) {
	if _, err := Load(writeConfig(t, "logging:\n  level: verbose\n")); err == nil {
		t.Error("expected error for unknown logging level")
	}
	if _, err := Load(writeConfig(t, "logging:\n  format: xml\n")); err == nil {
		t.Error("expected error for unknown logging format")
	}
}

func TestNew_DoesNotTouchGlobal(t *testing.T) {
	loaded, err := Load(writeConfig(t, "name: loaded\n"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	fresh := New()
	if fresh == loaded || Get() != loaded {
		t.Error("New() must return an independent value")
	}
	if fresh.Name != Defaults.Name {
		t.Errorf("New().Name = %q", fresh.Name)
	}
}

// TestLoad_NullValues tests that a key set to null reads as its zero value
// rather than the default
func TestLoad_NullValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  host: ~
  path: ~
sidebar:
  collapsible: null
`))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.Host != "" || cfg.API.Path != "" {
		t.Errorf("API = %+v, want empty host and path", cfg.API)
	}
	if cfg.IsCrossDomain() {
		t.Error("IsCrossDomain() = true, want false")
	}
	if got := cfg.APIPath(); got != "/" {
		t.Errorf("APIPath() = %q, want %q", got, "/")
	}
	if cfg.Sidebar.Collapsible {
		t.Error("Sidebar.Collapsible = true, want false")
	}
	if !cfg.Sidebar.AutoMenuSwitch {
		t.Error("Sidebar.AutoMenuSwitch lost its default")
	}
}

// TestLoad_MissingDefaultFile tests that Load("") falls back to the defaults
// when the default config file does not exist
func TestLoad_MissingDefaultFile(t *testing.T) {
	saved := Defaults.ConfigPath
	Defaults.ConfigPath = filepath.Join(t.TempDir(), "console.conf")
	t.Cleanup(func() { Defaults.ConfigPath = saved })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.API.Host != Defaults.API.Host || cfg.Server.Port != Defaults.Server.Port {
		t.Errorf("Expected defaults, got API %+v Server %+v", cfg.API, cfg.Server)
	}
}

func TestIsCrossDomain_DebugLog(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.LoggerConfig{Level: logging.LevelDebug, Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.LoggerConfig{Format: "json", Output: io.Discard}) })

	cfg := New()
	cfg.API.Host = ""
	cfg.IsCrossDomain()
	if buf.Len() > 0 {
		t.Errorf("Expected no log output for same-origin API, got: %s", buf.String())
	}

	cfg.API.Host = "http://api.example.com"
	cfg.IsCrossDomain()
	if !strings.Contains(buf.String(), "API requests are cross-domain") {
		t.Errorf("Expected cross-domain debug message, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Errorf("Expected debug level, got: %s", buf.String())
	}
}
