package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// ConfigTypeError is returned by Load when a key holds a value of the wrong
// type, for example `debug: "yes"` or `api.host: 42`.
type ConfigTypeError struct {
	Key  string
	Want string
	Got  string
}

func (e *ConfigTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Key, e.Want, e.Got)
}

const (
	kindString = "string"
	kindBool   = "bool"
	kindInt    = "integer"
)

// keyKinds lists every key Load accepts with the type its value must have.
var keyKinds = []struct {
	key  string
	kind string
}{
	{"name", kindString},
	{"footer", kindString},
	{"debug", kindBool},
	{"tab_mode.enable", kindBool},
	{"tab_mode.allow_duplicate", kindBool},
	{"api.host", kindString},
	{"api.path", kindString},
	{"api.timeout", kindInt},
	{"login.check", kindString},
	{"login.sso", kindString},
	{"login.login", kindString},
	{"login.logout", kindString},
	{"sidebar.collapsible", kindBool},
	{"sidebar.auto_menu_switch", kindBool},
	{"server.host", kindString},
	{"server.port", kindInt},
	{"server.prefix", kindString},
	{"logging.level", kindString},
	{"logging.format", kindString},
	{"logging.path", kindString},
	{"logging.truncate", kindBool},
}

// checkTypes fails with a *ConfigTypeError on the first key whose value does
// not have the declared type. viper decodes weakly, so without this check
// `debug: "yes"` would silently become true.
func checkTypes(v *viper.Viper) error {
	for _, k := range keyKinds {
		val := v.Get(k.key)
		if val == nil {
			continue
		}
		if !hasKind(val, k.kind) {
			return &ConfigTypeError{Key: k.key, Want: k.kind, Got: fmt.Sprintf("%T", val)}
		}
	}
	return nil
}

func hasKind(val any, kind string) bool {
	switch kind {
	case kindString:
		_, ok := val.(string)
		return ok
	case kindBool:
		_, ok := val.(bool)
		return ok
	case kindInt:
		switch val.(type) {
		case int, int32, int64, uint, uint32, uint64:
			return true
		}
	}
	return false
}

// isNotFound reports whether err means the config file does not exist.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
