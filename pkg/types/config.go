package types

import (
	"errors"
	"regexp"
)

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string   `json:"backend" yaml:"backend"`
	DataDir string   `json:"data_dir" yaml:"data_dir"`
	Raters  []string `json:"raters" yaml:"raters"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultRaters are the household members rated on a fresh install.
var DefaultRaters = []string{"drumlin", "ian", "lina"}

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrInvalidRater   = errors.New("rater names must be lowercase letters, digits, or underscores")
	ErrDuplicateRater = errors.New("duplicate rater")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// raterPattern restricts rater names to safe column-name fragments.
var raterPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	seen := make(map[string]bool, len(c.Raters))
	for _, r := range c.Raters {
		if !raterPattern.MatchString(r) {
			return ErrInvalidRater
		}
		if seen[r] {
			return ErrDuplicateRater
		}
		seen[r] = true
	}
	return nil
}

// EffectiveRaters returns the configured raters, or DefaultRaters when none
// are configured.
func (c Config) EffectiveRaters() []string {
	if len(c.Raters) == 0 {
		return DefaultRaters
	}
	return c.Raters
}
