// Package config loads application configuration from environment variables
// (SCREENER_ prefix) merged with an optional YAML file. Chart font settings
// live here so the presentation layer receives them as explicit
// configuration instead of mutating global state.
package config
