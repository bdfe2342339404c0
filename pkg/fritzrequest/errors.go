package fritzrequest

import (
	"errors"
	"fmt"
)

// ConfigError reports connection options that cannot be used to build a request.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// ErrMissingConfig is returned before any I/O when Options.Server is empty.
var ErrMissingConfig error = &ConfigError{msg: "missing login config"}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// StatusError carries a classified non-2xx response as an error value.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fritz!box responded with status %d: %s", e.StatusCode, e.Message)
}
