package config

import "os"

// EnvironmentExpander expands environment variable placeholders inside raw
// configuration bytes before they are parsed.
type EnvironmentExpander interface {
	Expand(input []byte) ([]byte, error)
}

// OsEnvironmentExpander expands ${VAR} and $VAR placeholders with
// os.ExpandEnv. Unset variables expand to the empty string.
type OsEnvironmentExpander struct{}

// NewOsEnvironmentExpander creates a new OsEnvironmentExpander.
func NewOsEnvironmentExpander() *OsEnvironmentExpander {
	return &OsEnvironmentExpander{}
}

// Expand implements EnvironmentExpander. os.ExpandEnv never fails, so the
// returned error is always nil.
func (e *OsEnvironmentExpander) Expand(input []byte) ([]byte, error) {
	return []byte(os.ExpandEnv(string(input))), nil
}

var _ EnvironmentExpander = (*OsEnvironmentExpander)(nil)
