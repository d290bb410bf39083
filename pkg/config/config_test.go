package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[fix]
mode = "window"
delimiter = "|"
field = 2
normalize = "nfc"

[rules]
path = "/srv/rules.tsv"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Fix.Mode != "window" || cfg.Fix.Delimiter != "|" || cfg.Fix.Field != 2 || cfg.Fix.Normalize != "nfc" {
		t.Errorf("unexpected fix section %+v", cfg.Fix)
	}
	if cfg.Rules.Path != "/srv/rules.tsv" {
		t.Errorf("unexpected rules path %q", cfg.Rules.Path)
	}
	if cfg.Server.MaxTextBytes != DefaultConfig().Server.MaxTextBytes {
		t.Errorf("missing section should keep defaults, got %d", cfg.Server.MaxTextBytes)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// field has the wrong type, so typed decoding fails
	path := writeConfig(t, `
[fix]
mode = "window"
field = "two"

[server]
max_text_bytes = 2048
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Fix.Mode != "window" {
		t.Errorf("expected recovered mode, got %q", cfg.Fix.Mode)
	}
	if cfg.Fix.Field != 1 {
		t.Errorf("expected default field, got %d", cfg.Fix.Field)
	}
	if cfg.Server.MaxTextBytes != 2048 {
		t.Errorf("expected recovered max_text_bytes, got %d", cfg.Server.MaxTextBytes)
	}
}

func TestTryPartialParseReportsDropped(t *testing.T) {
	path := writeConfig(t, `
[fix]
mode = 3
delimiter = ";"
field = "two"

[rules]
path = "/srv/rules.tsv"

[server]
max_text_bytes = "big"
`)
	cfg, dropped, err := tryPartialParse(path)
	if err != nil {
		t.Fatalf("tryPartialParse: %v", err)
	}

	expected := []string{"fix.mode", "fix.field", "server.max_text_bytes"}
	if strings.Join(dropped, ",") != strings.Join(expected, ",") {
		t.Errorf("dropped = %v, expected %v", dropped, expected)
	}
	defaults := DefaultConfig()
	if cfg.Fix.Mode != defaults.Fix.Mode || cfg.Fix.Field != defaults.Fix.Field {
		t.Errorf("dropped values should keep defaults, got %+v", cfg.Fix)
	}
	if cfg.Fix.Delimiter != ";" || cfg.Rules.Path != "/srv/rules.tsv" {
		t.Errorf("valid values should be kept, got %+v / %+v", cfg.Fix, cfg.Rules)
	}
	if cfg.Server.MaxTextBytes != defaults.Server.MaxTextBytes {
		t.Errorf("max_text_bytes = %d, expected default", cfg.Server.MaxTextBytes)
	}
}

func TestLoadConfigIgnoresUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[fix]\nmode = \"window\"\ncolour = \"blue\"\n\n[extra]\nx = 1\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Fix.Mode != "window" {
		t.Errorf("mode = %q, expected window", cfg.Fix.Mode)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	testCases := []struct {
		content     string
		contains    string
		description string
	}{
		{"[fix]\nmode = \"fuzzy\"\n", "unknown fix mode", "Unknown mode"},
		{"[fix]\nfield = 0\n", "fix.field", "Zero field"},
		{"[fix]\ndelimiter = \"\"\n", "fix.delimiter", "Empty delimiter"},
		{"[fix]\nnormalize = \"nfx\"\n", "normalization form", "Unknown normalization"},
		{"this is = = not toml", "parse config", "Garbage"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Errorf("error %q does not mention %q", err, tc.contains)
			}
		})
	}
}

func TestLoadConfigWithPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := LoadConfigWithPriority("")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if path != "" || cfg.Fix.Mode != "longest" {
		t.Errorf("expected built-in defaults, got path %q mode %q", path, cfg.Fix.Mode)
	}

	custom := writeConfig(t, "[fix]\nmode = \"window\"\n")
	cfg, path, err = LoadConfigWithPriority(custom)
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	if path != custom || cfg.Fix.Mode != "window" {
		t.Errorf("expected custom config, got path %q mode %q", path, cfg.Fix.Mode)
	}

	if _, _, err := LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.Fix.Field = 3
	cfg.Rules.Path = "rules.tsv"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}
