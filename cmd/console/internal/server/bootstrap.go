package server

import (
	"github.com/thalib/console/cmd/console/internal/config"
)

// Bootstrap is the document served as config.json. Keys are camelCase
// because the browser reads them directly.
type Bootstrap struct {
	Name    string           `json:"name"`
	Footer  string           `json:"footer"`
	Debug   bool             `json:"debug"`
	TabMode BootstrapTabMode `json:"tabMode"`
	API     BootstrapAPI     `json:"api"`
	Login   BootstrapLogin   `json:"login"`
	Sidebar BootstrapSidebar `json:"sidebar"`
	Version string           `json:"version"`
}

// BootstrapTabMode mirrors the tab_mode settings.
type BootstrapTabMode struct {
	Enable         bool `json:"enable"`
	AllowDuplicate bool `json:"allowDuplicate"`
}

// BootstrapAPI holds the resolved API location the browser sends ajax
// requests to.
type BootstrapAPI struct {
	Path        string `json:"path"`
	CrossDomain bool   `json:"crossDomain"`
	Timeout     int    `json:"timeout"` // milliseconds
}

// BootstrapLogin carries ready-to-use login URLs. Check and Login are ajax
// endpoints under the API path; Logout is a page the browser navigates to.
type BootstrapLogin struct {
	Check  string `json:"check"`
	Login  string `json:"login"`
	Logout string `json:"logout"`
	SSO    string `json:"sso"`
	IsSSO  bool   `json:"isSSO"`
}

// BootstrapSidebar mirrors the sidebar settings.
type BootstrapSidebar struct {
	Collapsible    bool `json:"collapsible"`
	AutoMenuSwitch bool `json:"autoMenuSwitch"`
}

// NewBootstrap builds the document from cfg.
func NewBootstrap(cfg *config.AppConfig, version string) Bootstrap {
	return Bootstrap{
		Name:   cfg.Name,
		Footer: cfg.Footer,
		Debug:  cfg.Debug,
		TabMode: BootstrapTabMode{
			Enable:         cfg.TabMode.Enable,
			AllowDuplicate: cfg.TabMode.AllowDuplicate,
		},
		API: BootstrapAPI{
			Path:        cfg.APIPath(),
			CrossDomain: cfg.IsCrossDomain(),
			Timeout:     cfg.API.Timeout,
		},
		Login: BootstrapLogin{
			Check:  cfg.APIEndpoint(cfg.Login.Check),
			Login:  cfg.APIEndpoint(cfg.Login.Login),
			Logout: cfg.Login.Logout,
			SSO:    cfg.Login.SSO,
			IsSSO:  cfg.IsSSO(),
		},
		Sidebar: BootstrapSidebar{
			Collapsible:    cfg.Sidebar.Collapsible,
			AutoMenuSwitch: cfg.Sidebar.AutoMenuSwitch,
		},
		Version: version,
	}
}
