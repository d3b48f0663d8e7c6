// Package config loads server settings from the environment with
// envconfig. Every field has a default, so an empty environment yields
// Default().
package config
