package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a driver configuration that cannot produce geometry.
	ErrInvalidConfig = errors.New("frame: invalid config")

	// ErrClosed is returned by a backend once its output is gone (window closed).
	ErrClosed = errors.New("frame: backend closed")

	// ErrNoRoot indicates the driver currently holds no tree.
	ErrNoRoot = errors.New("frame: no root")
)

// ConfigError names the offending field of an invalid Config.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
