package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// applyNulls overrides every known key the config file sets to null with
// the zero value of its kind, so `host: ~` means "no host" instead of
// falling back to the default. viper drops null values when it merges the
// file with the defaults, hence the second parse of the raw file.
func applyNulls(v *viper.Viper) error {
	data, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	nulls := make(map[string]bool)
	collectNulls("", doc, nulls)

	for _, k := range keyKinds {
		if !nulls[k.key] {
			continue
		}
		switch k.kind {
		case kindString:
			v.Set(k.key, "")
		case kindBool:
			v.Set(k.key, false)
		case kindInt:
			v.Set(k.key, 0)
		}
	}
	return nil
}

// collectNulls records the dotted, lower-cased path of every null leaf in m.
func collectNulls(prefix string, m map[string]any, nulls map[string]bool) {
	for k, val := range m {
		key := prefix + strings.ToLower(k)
		switch val := val.(type) {
		case nil:
			nulls[key] = true
		case map[string]any:
			collectNulls(key+".", val, nulls)
		}
	}
}
