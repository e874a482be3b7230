package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	// ErrInvalidConfig marks a value no fill run can work with.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading the file or environment layers.
	ErrLoadConfig = errors.New("load config failed")
)
