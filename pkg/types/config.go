package types

import "errors"

// Config holds backend selection and parameters for phonebook.Open.
type Config struct {
	Backend  string `json:"backend" yaml:"backend" mapstructure:"backend"`
	SeedFile string `json:"seed_file,omitempty" yaml:"seed_file,omitempty" mapstructure:"seed_file"`
}

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. SeedFile is not checked here; a missing seed
// file is reported when it is loaded.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
