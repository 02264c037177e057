package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/heyaikeedo/apub/pkg/errors"
)

// EnvPublicDir is the environment variable overriding the web root.
// It is the contract the host exposes to operators and wins over every
// other configuration layer.
const EnvPublicDir = "PUBLIC_DIR"

// envPrefix is the prefix for apub's own environment overrides
// (e.g. APUB_VENDOR_DIR).
const envPrefix = "APUB_"

// Config holds the resolved apub configuration.
type Config struct {
	// WebRoot is the externally served base directory that receives
	// package assets.
	WebRoot string `koanf:"web_root"`

	// VendorDir is the package manager's dependency directory; the
	// mapping document lives beside the installed packages in it.
	VendorDir string `koanf:"vendor_dir"`

	// AssetPrefix is the subdirectory of the web root that holds
	// per-package asset directories (webRoot/<prefix>/<vendor>/<project>).
	AssetPrefix string `koanf:"asset_prefix"`

	// PluginsDir and ThemesDir are the fixed base installation
	// directories for the two recognized package types.
	PluginsDir string `koanf:"plugins_dir"`
	ThemesDir  string `koanf:"themes_dir"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"web_root":     "public",
		"vendor_dir":   "vendor",
		"asset_prefix": "e",
		"plugins_dir":  filepath.Join("extra", "plugins"),
		"themes_dir":   filepath.Join("extra", "themes"),
	}
}

// Default returns the built-in configuration with no file or
// environment overrides applied.
func Default() *Config {
	cfg, _ := unmarshal(newKoanfWithDefaults())
	return cfg
}

// Load builds the configuration for a project rooted at dir.
func Load(dir string) (*Config, error) {
	k := newKoanfWithDefaults()

	// Config file, first match wins. TOML is the primary format, YAML
	// is accepted for parity with the host's own config files.
	type candidate struct {
		name   string
		parser koanf.Parser
	}
	candidates := []candidate{
		{".apub.toml", toml.Parser()},
		{"apub.toml", toml.Parser()},
		{".apub.yaml", yaml.Parser()},
		{"apub.yaml", yaml.Parser()},
	}
	for _, c := range candidates {
		path := filepath.Join(dir, c.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), c.parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		break
	}

	// Environment overrides: APUB_WEB_ROOT -> web_root and so on.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// PUBLIC_DIR wins over everything.
	if publicDir := os.Getenv(EnvPublicDir); publicDir != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{
			"web_root": publicDir,
		}, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply PUBLIC_DIR override")
		}
	}

	return unmarshal(k)
}

func newKoanfWithDefaults() *koanf.Koanf {
	k := koanf.New(".")
	// Loading a confmap cannot fail.
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	return k
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}
