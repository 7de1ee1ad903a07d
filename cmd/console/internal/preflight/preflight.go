// Package preflight verifies the paths the console writes to before any
// other component starts, so an unusable log directory stops the process
// instead of silently sending logs to stdout.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thalib/console/cmd/console/internal/constants"
)

// PathCheck describes a file or directory that must be usable
type PathCheck struct {
	Path      string
	IsDir     bool
	Required  bool
	FailFatal bool // If true, failure makes ValidateAndCreate return an error
}

// CheckResult represents the result of a preflight check
type CheckResult struct {
	Path    string
	Exists  bool
	Created bool
	Error   error
}

// ValidateAndCreate checks each path, creating missing ones. It returns the
// results of all checks and the first error of a FailFatal check.
func ValidateAndCreate(checks []PathCheck) ([]CheckResult, error) {
	results := make([]CheckResult, 0, len(checks))
	var fatal error

	for _, check := range checks {
		result := run(check)
		if result.Error != nil && check.FailFatal && fatal == nil {
			fatal = result.Error
		}
		results = append(results, result)
	}

	return results, fatal
}

func run(check PathCheck) CheckResult {
	result := CheckResult{Path: check.Path}

	info, err := os.Stat(check.Path)
	switch {
	case err == nil:
		result.Exists = true
		if check.IsDir && !info.IsDir() {
			result.Error = fmt.Errorf("path exists but is not a directory: %s", check.Path)
		} else if !check.IsDir && info.IsDir() {
			result.Error = fmt.Errorf("path exists but is a directory: %s", check.Path)
		}

	case os.IsNotExist(err):
		if !check.Required {
			return result
		}
		if check.IsDir {
			if err := os.MkdirAll(check.Path, constants.DirPermissions); err != nil {
				result.Error = fmt.Errorf("failed to create directory %s: %w", check.Path, err)
				return result
			}
			result.Created = true
			return result
		}
		if err := os.MkdirAll(filepath.Dir(check.Path), constants.DirPermissions); err != nil {
			result.Error = fmt.Errorf("failed to create parent directory for %s: %w", check.Path, err)
			return result
		}
		// O_EXCL so an existing file is never clobbered
		f, err := os.OpenFile(check.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			result.Error = fmt.Errorf("failed to create file %s: %w", check.Path, err)
			return result
		}
		f.Close()
		result.Created = true

	default:
		result.Error = fmt.Errorf("failed to check path %s: %w", check.Path, err)
	}

	return result
}

// CreateOrTruncateFile creates path, or empties it if it already exists.
func CreateOrTruncateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create or truncate file %s: %w", path, err)
	}
	return f.Close()
}
