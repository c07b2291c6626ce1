// Package config loads and validates the item service configuration from
// defaults, an optional config.yaml and ITEMAPI_-prefixed environment variables.
package config
