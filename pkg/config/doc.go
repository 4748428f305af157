// Package config loads dotstrap's settings.
//
// Sources are layered with koanf, later ones winning:
//
//  1. embedded/defaults.toml
//  2. dotstrap.toml, dotstrap.yaml or dotstrap.yml at the repo root
//  3. DOTSTRAP_* environment variables (DOTSTRAP_PIXI__INSTALL_URL -> pixi.install_url)
//  4. explicit overrides (the --set flag)
//
// Array values replace, they are not merged.
package config
