package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_validateDatabase(t *testing.T) {
	tests := []struct {
		name    string
		db      string
		wantErr bool
	}{
		{
			name:    "in-memory name",
			db:      ":memory:",
			wantErr: false,
		},
		{
			name:    "plain path",
			db:      "./data/demo.db",
			wantErr: false,
		},
		{
			name:    "empty string",
			db:      "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			db:      "   ",
			wantErr: true,
		},
		{
			name:    "uri name",
			db:      "file:demo.db?mode=ro",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDatabase(tt.db)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_validateSeed(t *testing.T) {
	tests := []struct {
		name    string
		seed    int
		wantErr bool
	}{
		{
			name:    "zero",
			seed:    0,
			wantErr: false,
		},
		{
			name:    "positive",
			seed:    1000,
			wantErr: false,
		},
		{
			name:    "negative",
			seed:    -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSeed(tt.seed)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
