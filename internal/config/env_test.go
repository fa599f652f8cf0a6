package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION":              "1.2.3",
		"APP_LOG_LEVEL":            "warn",
		"APP_PASSWORD_HASH_SCHEME": "argon2id",
		"APP_ADMIN_USERNAME":       "root",
		"APP_ADMIN_PASSWORD":       "toor",
		"APP_FEED_DEFAULT_LIMIT":   "25",
		"APP_FEED_MAX_LIMIT":       "75",
		"APP_MAX_UPLOAD_SIZE":      "1048576",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",

		// Storage has nested prefixes: STORAGE_ + DB_ / OBJECTS_
		"STORAGE_DB_DRIVER":                 "sqlite",
		"STORAGE_DB_DATABASE_URI":           "file:test.db",
		"STORAGE_OBJECTS_ENDPOINT":          "http://minio:9000",
		"STORAGE_OBJECTS_REGION":            "eu-west-1",
		"STORAGE_OBJECTS_BUCKET":            "uploads",
		"STORAGE_OBJECTS_ACCESS_KEY_ID":     "key",
		"STORAGE_OBJECTS_SECRET_ACCESS_KEY": "secret",
		"STORAGE_OBJECTS_KEY_PREFIX":        "files",
		"STORAGE_OBJECTS_PUBLIC_URL":        "https://cdn.example.com",
		"STORAGE_OBJECTS_USE_PATH_STYLE":    "true",
	})

	// Act
	cfg, err := parseEnv[StructuredConfig]()

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "argon2id", cfg.App.PasswordHashScheme)
	assert.Equal(t, "root", cfg.App.AdminUsername)
	assert.Equal(t, "toor", cfg.App.AdminPassword)
	assert.Equal(t, 25, cfg.App.FeedDefaultLimit)
	assert.Equal(t, 75, cfg.App.FeedMaxLimit)
	assert.Equal(t, int64(1048576), cfg.App.MaxUploadSize)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, Objects{
		Endpoint:        "http://minio:9000",
		Region:          "eu-west-1",
		Bucket:          "uploads",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		KeyPrefix:       "files",
		PublicURL:       "https://cdn.example.com",
		UsePathStyle:    true,
	}, cfg.Storage.Objects)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SERVER_ADDRESS":          ":9000",
		"STORAGE_DB_DATABASE_URI": "postgres://localhost/db",
	})

	cfg, err := parseEnv[StructuredConfig]()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.App.Version)
	assert.Zero(t, cfg.Server.RequestTimeout)
	assert.False(t, cfg.Storage.Objects.Enabled())
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "not-a-duration"})

	_, err := parseEnv[StructuredConfig]()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidInteger(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_FEED_MAX_LIMIT": "many"})

	_, err := parseEnv[StructuredConfig]()
	require.Error(t, err)
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

// clearEnvVars unsets every variable the config reads and restores the
// previous values when the test ends.
func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_VERSION",
		"APP_LOG_LEVEL",
		"APP_PASSWORD_HASH_SCHEME",
		"APP_ADMIN_USERNAME",
		"APP_ADMIN_PASSWORD",
		"APP_FEED_DEFAULT_LIMIT",
		"APP_FEED_MAX_LIMIT",
		"APP_MAX_UPLOAD_SIZE",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",

		"STORAGE_DB_DRIVER",
		"STORAGE_DB_DATABASE_URI",
		"STORAGE_OBJECTS_ENDPOINT",
		"STORAGE_OBJECTS_REGION",
		"STORAGE_OBJECTS_BUCKET",
		"STORAGE_OBJECTS_ACCESS_KEY_ID",
		"STORAGE_OBJECTS_SECRET_ACCESS_KEY",
		"STORAGE_OBJECTS_KEY_PREFIX",
		"STORAGE_OBJECTS_PUBLIC_URL",
		"STORAGE_OBJECTS_USE_PATH_STYLE",

		"CLIENT_SERVER_URL",
		"CLIENT_TOKEN",
		"CLIENT_REQUEST_TIMEOUT",
		"CLIENT_LOG_LEVEL",
	}
	for _, k := range keys {
		prev, ok := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		if ok {
			t.Cleanup(func() { _ = os.Setenv(k, prev) })
		}
	}
}
