package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns defaults completed with a DSN so that it passes
// validation on its own.
func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Storage.DB.DSN = "postgres://localhost/darkhaven"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a zero configuration does not pass
// validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs replace earlier values while zero fields keep them.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{Server: Server{HTTPAddress: ":9000"}},
		&StructuredConfig{App: App{Version: "2.0.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 50, cfg.App.FeedDefaultLimit)
	assert.Equal(t, 100, cfg.App.FeedMaxLimit)
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = -time.Second },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:   "sqlite driver",
			mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = DriverSQLite },
		},
		{
			name: "objects without public url",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Objects.Bucket = "uploads"
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "objects with half credentials",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Objects.Bucket = "uploads"
				cfg.Storage.Objects.PublicURL = "https://cdn.example.com"
				cfg.Storage.Objects.AccessKeyID = "key"
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "objects complete",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Objects.Bucket = "uploads"
				cfg.Storage.Objects.PublicURL = "https://cdn.example.com"
				cfg.Storage.Objects.AccessKeyID = "key"
				cfg.Storage.Objects.SecretAccessKey = "secret"
			},
		},
		{
			name:    "unknown hash scheme",
			mutate:  func(cfg *StructuredConfig) { cfg.App.PasswordHashScheme = "md5" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "default limit above max",
			mutate:  func(cfg *StructuredConfig) { cfg.App.FeedDefaultLimit = 500 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "admin username without password",
			mutate:  func(cfg *StructuredConfig) { cfg.App.AdminUsername = "root" },
			wantErr: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			b := newConfigBuilder()
			b.configs = append(b.configs, cfg)
			got, err := b.build()

			if tt.wantErr != nil {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_AppendsDefaults(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withDefaults())
	require.Len(t, b.configs, 1)
	assert.Equal(t, defaultConfig(), b.configs[0])
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":             "env-version",
		"STORAGE_DB_DATABASE_URI": "postgres://env/db",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "postgres://env/db", b.configs[0].Storage.DB.DSN)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "forever"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-a", ":7000"}))

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, ":7000", b.configs[0].Server.HTTPAddress)
}

func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Storage.DB.Driver = DriverSQLite
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, DriverSQLite, b.configs[1].Storage.DB.Driver)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	last := StructuredJSONConfig{}
	last.App.Version = "last-wins"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "last-wins", b.configs[3].App.Version)
}

// ── full pipeline ─────────────────────────────────────────────────────────────

// TestPipeline_Priority walks defaults, env, flags and JSON in order and
// checks which source wins for each field.
func TestPipeline_Priority(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "from-json"
	path := writeTempJSONConfig(t, payload)

	setEnvVars(t, map[string]string{
		"APP_VERSION":             "from-env",
		"APP_LOG_LEVEL":           "warn",
		"SERVER_ADDRESS":          ":8001",
		"STORAGE_DB_DATABASE_URI": "postgres://env/db",
		"CONFIG":                  path,
	})

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-a", ":8002"}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, "from-json", cfg.App.Version)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, ":8002", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://env/db", cfg.Storage.DB.DSN)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, "sha256", cfg.App.PasswordHashScheme)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, rest, err := GetClientConfig([]string{"version"})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, []string{"version"}, rest)
}

func TestGetClientConfig_FlagsOverrideEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CLIENT_SERVER_URL": "http://env:8080",
		"CLIENT_TOKEN":      "env-token",
	})

	cfg, rest, err := GetClientConfig([]string{"-server", "http://flag:8080", "feed", "10"})

	require.NoError(t, err)
	assert.Equal(t, "http://flag:8080", cfg.ServerURL)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, []string{"feed", "10"}, rest)
}

func TestGetClientConfig_Errors(t *testing.T) {
	clearEnvVars(t)

	_, _, err := GetClientConfig([]string{"-timeout", "-1s"})
	assert.ErrorIs(t, err, ErrInvalidClientConfigs)

	_, _, err = GetClientConfig([]string{"-nope"})
	assert.Error(t, err)
}
