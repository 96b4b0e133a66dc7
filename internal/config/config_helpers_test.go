package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestGetEnvAsInt tests the getEnvAsInt helper function
func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  int
	}{
		{"unset uses default", nil, 42},
		{"valid integer", strPtr("100"), 100},
		{"negative integer", strPtr("-10"), -10},
		{"zero", strPtr("0"), 0},
		{"invalid integer", strPtr("not-a-number"), 42},
		{"float value", strPtr("42.5"), 42},
		{"empty string", strPtr(""), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == nil {
				os.Unsetenv("TEST_INT_VAR")
			} else {
				t.Setenv("TEST_INT_VAR", *tt.value)
			}
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

// TestGetEnvAsDuration tests the getEnvAsDuration helper function
func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  time.Duration
	}{
		{"unset uses default", nil, 5 * time.Minute},
		{"minutes", strPtr("10m"), 10 * time.Minute},
		{"seconds", strPtr("30s"), 30 * time.Second},
		{"milliseconds", strPtr("500ms"), 500 * time.Millisecond},
		{"complex duration", strPtr("1h30m45s"), time.Hour + 30*time.Minute + 45*time.Second},
		{"invalid duration", strPtr("not-a-duration"), 5 * time.Minute},
		{"number without unit", strPtr("100"), 5 * time.Minute},
		{"empty string", strPtr(""), 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == nil {
				os.Unsetenv("TEST_DURATION_VAR")
			} else {
				t.Setenv("TEST_DURATION_VAR", *tt.value)
			}
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		})
	}
}

func strPtr(s string) *string {
	return &s
}
