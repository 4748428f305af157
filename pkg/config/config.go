package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix marks environment variables that override configuration keys
const EnvPrefix = "DOTSTRAP_"

// repoConfigFiles are tried in order; the first one found is loaded
var repoConfigFiles = []string{"dotstrap.toml", "dotstrap.yaml", "dotstrap.yml"}

// Config is the effective dotstrap configuration
type Config struct {
	Terminal TerminalConfig `koanf:"terminal" toml:"terminal" yaml:"terminal"`
	Pixi     PixiConfig     `koanf:"pixi" toml:"pixi" yaml:"pixi"`
	Tmux     TmuxConfig     `koanf:"tmux" toml:"tmux" yaml:"tmux"`
	RC       RCConfig       `koanf:"rc" toml:"rc" yaml:"rc"`
	Packages PackagesConfig `koanf:"packages" toml:"packages" yaml:"packages"`

	// Source is the repo config file that was loaded, if any
	Source string `koanf:"-" toml:"-" yaml:"-"`
}

// TerminalConfig holds terminal settings written into the RC addon
type TerminalConfig struct {
	// DefaultTerm is exported as TERM when the environment has none
	DefaultTerm string `koanf:"default_term" toml:"default_term" yaml:"default_term"`
}

type PixiConfig struct {
	InstallURL string `koanf:"install_url" toml:"install_url" yaml:"install_url"`
}

type TmuxConfig struct {
	TPMRepo string `koanf:"tpm_repo" toml:"tpm_repo" yaml:"tpm_repo"`
}

// RCConfig names the addon files relative to the repo root
type RCConfig struct {
	StaticAddon    string `koanf:"static_addon" toml:"static_addon" yaml:"static_addon"`
	GeneratedAddon string `koanf:"generated_addon" toml:"generated_addon" yaml:"generated_addon"`
}

// PackagesConfig lists the pixi packages installed by each step
type PackagesConfig struct {
	Essentials []string `koanf:"essentials" toml:"essentials" yaml:"essentials"`
	Tmux       []string `koanf:"tmux" toml:"tmux" yaml:"tmux"`
	Goodies    []string `koanf:"goodies" toml:"goodies" yaml:"goodies"`
}

// LoadOptions selects the sources for Load
type LoadOptions struct {
	// RepoRoot is searched for dotstrap.toml / dotstrap.yaml
	RepoRoot string

	// Overrides are dotted keys applied last
	Overrides map[string]interface{}

	// SkipEnv disables DOTSTRAP_* environment overrides
	SkipEnv bool
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	source := ""
	if opts.RepoRoot != "" {
		for _, name := range repoConfigFiles {
			path := filepath.Join(opts.RepoRoot, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			parser := koanf.Parser(toml.Parser())
			if filepath.Ext(name) != ".toml" {
				parser = yaml.Parser()
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load repo config from %s", path)
			}
			source = path
			break
		}
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	log.Debug().Str("source", source).Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps DOTSTRAP_PIXI__INSTALL_URL to pixi.install_url.
// Variables without a section separator (DOTSTRAP_ROOT) are not config keys.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

// ParseOverrides turns key=value pairs into a confmap-ready map
func ParseOverrides(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid override %q, expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
