package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// decodeFile decodes a config file into config and warns about keys that no
// section knows.
func decodeFile(configPath string, config *Config) error {
	md, err := toml.DecodeFile(configPath, config)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Unknown key %s in config file %s, ignored", key, configPath)
	}
	return nil
}

// setter stores a raw TOML value if it has the expected type.
type setter func(value any) bool

func stringValue(dst *string) setter {
	return func(value any) bool {
		s, ok := value.(string)
		if ok {
			*dst = s
		}
		return ok
	}
}

func intValue(dst *int) setter {
	return func(value any) bool {
		n, ok := value.(int64)
		if ok {
			*dst = int(n)
		}
		return ok
	}
}

type recoverable struct {
	section string
	key     string
	set     setter
}

func recoverableKeys(config *Config) []recoverable {
	return []recoverable{
		{"fix", "mode", stringValue(&config.Fix.Mode)},
		{"fix", "delimiter", stringValue(&config.Fix.Delimiter)},
		{"fix", "field", intValue(&config.Fix.Field)},
		{"fix", "normalize", stringValue(&config.Fix.Normalize)},
		{"rules", "path", stringValue(&config.Rules.Path)},
		{"server", "max_text_bytes", intValue(&config.Server.MaxTextBytes)},
	}
}

// tryPartialParse decodes a config file into a generic map and keeps every
// known value of the right type on top of the defaults. It returns the
// "section.key" names whose values were dropped.
func tryPartialParse(configPath string) (*Config, []string, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read config %s: %w", configPath, err)
	}
	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}

	config := DefaultConfig()
	var dropped []string
	for _, k := range recoverableKeys(config) {
		section, ok := raw[k.section].(map[string]any)
		if !ok {
			continue
		}
		value, present := section[k.key]
		if !present {
			continue
		}
		if !k.set(value) {
			name := k.section + "." + k.key
			log.Warnf("Config %s: %s has the wrong type (%T), using default", configPath, name, value)
			dropped = append(dropped, name)
		}
	}
	return config, dropped, nil
}
