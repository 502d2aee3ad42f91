package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "GRINDMAP_"

// applyEnv overrides settings from GRINDMAP_<SECTION>_<KEY> variables, for
// example GRINDMAP_EDITOR_SCROLL_STEP=2. Variables naming no known setting
// are ignored.
func (c *Config) applyEnv(environ []string) error {
	known, err := settingsMap(Default())
	if err != nil {
		return err
	}

	overrides := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		section, key, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_")
		if !ok {
			continue
		}
		settings, ok := known[section].(map[string]any)
		if !ok {
			continue
		}
		def, ok := settings[key]
		if !ok {
			continue
		}

		v, err := convertEnv(def, value)
		if err != nil {
			return &EnvError{Name: name, Value: value, Err: err}
		}
		sec, _ := overrides[section].(map[string]any)
		if sec == nil {
			sec = make(map[string]any)
			overrides[section] = sec
		}
		sec[key] = v
	}
	if len(overrides) == 0 {
		return nil
	}

	data, err := toml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encoding environment overrides: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("applying environment overrides: %w", err)
	}
	return nil
}

// settingsMap returns c as nested section maps keyed by TOML name.
func settingsMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return m, nil
}

// convertEnv parses value as the type of the setting's default.
func convertEnv(def any, value string) (any, error) {
	switch def.(type) {
	case bool:
		return strconv.ParseBool(value)
	case int64:
		return strconv.ParseInt(value, 10, 64)
	default:
		return value, nil
	}
}
