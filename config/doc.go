// Package config loads configuration from YAML files, .env files, and
// environment variables, in that order of increasing precedence. Loaded
// structs are validated against their `validate` tags before use.
package config
