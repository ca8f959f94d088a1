package config

import "errors"

var (
	// ErrConfigNotFound reports a missing configuration file.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig reports a configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
