// Package config loads, normalizes, and validates subdetector's TOML
// configuration.
//
// Configuration is optional: when no file exists at the default location
// (~/.config/subdetector/config.toml) or the path passed via --config,
// repository defaults apply. Loaded values pass through normalization
// (path expansion, trimming, default backfill) before validation, so the
// rest of the codebase can rely on a Config being internally consistent.
package config
