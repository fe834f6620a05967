// Package config manages user-level settings stored at ~/.dogfold/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default scaffolding target and the repository root override.
package config
