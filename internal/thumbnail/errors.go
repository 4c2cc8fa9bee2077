package thumbnail

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("invalid thumbnail configuration")

// ConfigurationError reports a thumbnail spec that does not describe exactly one
// known layout rule with well-formed parameters.
type ConfigurationError struct {
	Spec   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("thumbnail spec %q: %s", e.Spec, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configError(spec, format string, args ...any) error {
	return &ConfigurationError{Spec: spec, Reason: fmt.Sprintf(format, args...)}
}
