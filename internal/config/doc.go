// Package config loads, normalizes, and validates greenroom's TOML
// configuration. Lookup order is an explicit --config path, then
// ~/.config/greenroom/config.toml, then ./greenroom.toml; defaults apply when
// no file exists. All path values are tilde-expanded and made absolute during
// normalization.
package config
