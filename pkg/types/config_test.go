package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"missing backend", Config{DataDir: "/tmp/menu"}, ErrBackendEmpty},
		{"postgres is not supported", Config{Backend: "postgres"}, ErrBackendUnknown},
		{"sqlite with data dir", Config{Backend: BackendSQLite, DataDir: "/tmp/menu"}, nil},
		{"data dir resolved later", Config{Backend: BackendSQLite}, nil},
		{"custom raters", Config{Backend: BackendSQLite, Raters: []string{"bianca", "ian_2"}}, nil},
		{"capitalized rater", Config{Backend: BackendSQLite, Raters: []string{"Bianca"}}, ErrInvalidRater},
		{"rater carrying sql", Config{Backend: BackendSQLite, Raters: []string{"x; DROP TABLE menu"}}, ErrInvalidRater},
		{"rater starting with a digit", Config{Backend: BackendSQLite, Raters: []string{"2ian"}}, ErrInvalidRater},
		{"same rater twice", Config{Backend: BackendSQLite, Raters: []string{"ian", "lina", "ian"}}, ErrDuplicateRater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigEffectiveRaters(t *testing.T) {
	assert.Equal(t, DefaultRaters, Config{}.EffectiveRaters())
	assert.Equal(t, []string{"bianca"}, Config{Raters: []string{"bianca"}}.EffectiveRaters())
}
