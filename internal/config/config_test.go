package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		Port:       "8480",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		DBPassword: "secure-password",
		DBSSLMode:  "require",
		Env:        "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, baseConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		c := baseConfig()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := baseConfig()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})
}

func TestConfig_ValidateProduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			name:   "strong production config",
			mutate: func(c *Config) {},
		},
		{
			name: "default jwt secret rejected",
			mutate: func(c *Config) {
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			expectError: true,
		},
		{
			name: "short jwt secret rejected",
			mutate: func(c *Config) {
				c.JWTSecret = strings.Repeat("x", 16)
			},
			expectError: true,
		},
		{
			name: "default db password rejected",
			mutate: func(c *Config) {
				c.DBPassword = "password"
			},
			expectError: true,
		},
		{
			name: "empty db password rejected",
			mutate: func(c *Config) {
				c.DBPassword = ""
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseConfig()
			c.Env = "production"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
