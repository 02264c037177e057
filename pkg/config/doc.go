// Package config loads apub configuration by layering, in override
// order: built-in defaults, an optional apub.toml/.apub.toml or
// apub.yaml/.apub.yaml config file, APUB_* environment variables, and
// finally the PUBLIC_DIR web-root override. PUBLIC_DIR is read once at
// load time; the resulting Config value is threaded explicitly into
// the paths and placement layers.
package config
