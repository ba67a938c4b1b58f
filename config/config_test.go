package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Auth.Provider)
	assert.Equal(t, "5432", cfg.Database.Port)
	// expire_hours is normalized into a duration
	assert.Equal(t, 24, cfg.Auth.JWT.ExpireHours)
	assert.Equal(t, cfg.Auth.JWT.ExpireTime.Hours(), float64(cfg.Auth.JWT.ExpireHours))
	assert.Same(t, cfg, GlobalConfig)
}

func TestSafeErrorMessage(t *testing.T) {
	fallback := "operation failed"
	testErr := errors.New("internal database error")

	// nil err returns the fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release mode hides the error details
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug mode returns err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// nil GlobalConfig is treated as a development environment
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}
