package config

import "strings"

// trimTrailingSlashes removes every trailing '/' from s.
// A string made only of slashes becomes empty.
func trimTrailingSlashes(s string) string {
	return strings.TrimRight(s, "/")
}

// trimSlashes removes leading and trailing '/' from s.
// A string made only of slashes becomes empty.
func trimSlashes(s string) string {
	return strings.Trim(s, "/")
}

// joinAPIPath joins host and path with exactly one separator, also when
// either side is empty, so ("", "") yields "/" and ("", "api") yields "/api".
func joinAPIPath(host, path string) string {
	return host + "/" + path
}
