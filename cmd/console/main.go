package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thalib/console/cmd/console/internal/config"
	"github.com/thalib/console/cmd/console/internal/constants"
	"github.com/thalib/console/cmd/console/internal/logging"
	"github.com/thalib/console/cmd/console/internal/preflight"
	"github.com/thalib/console/cmd/console/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: "+constants.DefaultConfigPath+")")
	printOnly := flag.Bool("print", false, "print the front-end bootstrap document and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *printOnly {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(server.NewBootstrap(cfg, config.Version())); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode bootstrap document: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runPreflightChecks(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Preflight checks failed: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logging.LoggerConfig{
		Level:       logging.Level(cfg.Logging.Level),
		Format:      cfg.Logging.Format,
		ServiceName: "console",
		Version:     config.Version(),
	}
	if cfg.Logging.Path != "" {
		loggerConfig.FilePath = filepath.Join(cfg.Logging.Path, constants.LogFileName)
	}
	logging.Init(loggerConfig)

	logConfigSummary(cfg)

	srv := server.New(cfg, config.Version())
	if err := srv.Run(); err != nil {
		logging.ErrorWithErr("Server stopped with error", err)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}

	logging.Info("Server stopped gracefully")
}

// runPreflightChecks makes sure the log directory is usable before the
// logger opens its file. Without logging.path logs go to stdout and there is
// nothing to check.
func runPreflightChecks(cfg *config.AppConfig) error {
	if cfg.Logging.Path == "" {
		return nil
	}

	results, err := preflight.ValidateAndCreate([]preflight.PathCheck{{
		Path:      cfg.Logging.Path,
		IsDir:     true,
		Required:  true,
		FailFatal: true,
	}})
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Created {
			fmt.Printf("✓ Created: %s\n", result.Path)
		} else if result.Exists {
			fmt.Printf("✓ Verified: %s\n", result.Path)
		}
	}

	if cfg.Logging.Truncate {
		logFile := filepath.Join(cfg.Logging.Path, constants.LogFileName)
		fmt.Printf("Truncating log file: %s\n", logFile)
		if err := preflight.CreateOrTruncateFile(logFile); err != nil {
			return fmt.Errorf("failed to truncate log file: %w", err)
		}
	}

	return nil
}

// logConfigSummary logs the loaded configuration for debugging
func logConfigSummary(cfg *config.AppConfig) {
	logging.Info("=== Configuration Summary ===")
	logging.Infof("Name: %s", cfg.Name)
	logging.Infof("Server: %s:%d%s", cfg.Server.Host, cfg.Server.Port, cfg.Server.Prefix)
	logging.GetLogger().WithFields(map[string]any{
		"api_path":     cfg.APIPath(),
		"cross_domain": cfg.IsCrossDomain(),
		"timeout_ms":   cfg.API.Timeout,
		"sso":          cfg.IsSSO(),
	}).Infof("API Path: %s", cfg.APIPath())
	if cfg.IsSSO() {
		logging.Infof("SSO: %s", cfg.Login.SSO)
	}
	if cfg.Debug {
		logging.Warn("Debug mode is on: the front-end uses mock data")
	}
	logging.Info("============================")
}
