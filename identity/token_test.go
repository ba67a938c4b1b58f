package identity

import (
	"testing"
	"time"

	"fintrack/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initJWTTestConfig() {
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Auth:   config.AuthConfig{JWT: config.JWTConfig{Secret: "test-jwt-secret-key"}},
	}
}

func TestGenerateToken(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()

	InitJWT(config.GlobalConfig)

	token, err := GenerateToken("user-1", "a@x.com", 24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, len(token), 20)

	// parseable
	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestParseToken(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()

	InitJWT(config.GlobalConfig)

	// valid token
	token, _ := GenerateToken("user-100", "admin@x.com", time.Hour)
	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-100", claims.UserID)
	assert.Equal(t, "admin@x.com", claims.Email)

	// empty string
	_, err = ParseToken("")
	assert.Error(t, err)

	// invalid format
	_, err = ParseToken("not.a.valid.jwt")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()

	InitJWT(config.GlobalConfig)

	token, err := GenerateToken("user-1", "a@x.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}
