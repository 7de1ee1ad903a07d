package constants

import "os"

// Default file and directory paths used by the application.
const (
	// DefaultConfigPath is read when no -config flag is given.
	// A missing file at this path is not an error; defaults apply.
	DefaultConfigPath = "/etc/console.conf"

	// LogFileName is the file created inside logging.path.
	// Used in: main.go
	LogFileName = "console.log"
)

// File system permissions.
const (
	// DirPermissions is used when creating the log directory.
	DirPermissions os.FileMode = 0755

	// FilePermissions is used when creating the log file.
	FilePermissions os.FileMode = 0644
)
