// Package config loads, normalizes, and validates caption loader configuration.
//
// It supplies repository defaults, reads TOML files, and honours environment
// fallbacks for secrets (MIVIDEO_AUTH_ID, MIVIDEO_AUTH_SECRET,
// MIVIDEO_SESSION_TOKEN). The Config type centralizes every knob the CLI
// needs: gateway credentials, course identity, the URL template, the language
// allow-set, and the chunk window.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
