package config

import (
	"bytes"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names accepted by Render
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Render serializes the effective configuration in the given format
func (c *Config) Render(format string) (string, error) {
	switch format {
	case "", FormatTOML:
		return c.TOML()
	case FormatYAML, "yml":
		return c.YAML()
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown format %q (use toml or yaml)", format)
	}
}

// TOML renders the configuration as TOML
func (c *Config) TOML() (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as toml")
	}
	return buf.String(), nil
}

// YAML renders the configuration as YAML
func (c *Config) YAML() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as yaml")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as yaml")
	}
	return buf.String(), nil
}
