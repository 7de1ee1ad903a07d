// Package constants provides centralized constant definitions for the console service.
// Values reused across packages live here so headers, timeouts and paths stay
// consistent between the server, the logger and the config loader.
package constants

// HTTP header names used throughout the application.
const (
	// HeaderRequestID is the HTTP header used for request tracking and correlation.
	// Used in: logging/logger.go
	HeaderRequestID = "X-Request-ID"

	// HeaderContentType is the standard HTTP Content-Type header.
	// Used in: server/server.go
	HeaderContentType = "Content-Type"

	// HeaderCacheControl is the standard HTTP Cache-Control header.
	// Used in: server/server.go
	// Purpose: The bootstrap document must not be cached across deployments
	HeaderCacheControl = "Cache-Control"
)

// MIME types used in HTTP responses.
const (
	// MIMEApplicationJSON is the MIME type for JSON responses.
	MIMEApplicationJSON = "application/json"
)

// Cache directives.
const (
	// CacheNoStore forbids any cache from keeping the response.
	CacheNoStore = "no-store"
)
