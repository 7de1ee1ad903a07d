package constants

// Sensitive field names that should be masked/redacted in logs.
// Used in: logging/logger.go for automatic field masking
var SensitiveFields = []string{
	"password",
	"token",
	"secret",
	"authorization",
	"cookie",
}

// RedactedPlaceholder is the string used to replace sensitive values in logs.
const RedactedPlaceholder = "***REDACTED***"

// ContextKeyRequestID is the context key (and log field) for request IDs.
// Used in: logging/logger.go
const ContextKeyRequestID = "request_id"
