package service

import "errors"

// ConfigurationError means the admission policy is not fully configured
// Callers should answer with a generic "try later" response
type ConfigurationError struct {
	Missing []string // setting keys that are absent
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return "Required settings specific_allowed_postcodes or allowed_postcodes_lsoa are missing."
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
