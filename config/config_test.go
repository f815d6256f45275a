package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "TINYDI_STRICT")
	unsetEnv(t, "TINYDI_LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	unsetEnv(t, "TINYDI_STRICT")
	unsetEnv(t, "TINYDI_LOG_LEVEL")

	path := writeFile(t, "tinydi.yml", "strict: true\nlog_level: debug\n")

	cfg, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "tinydi.yml", "strict: true\nlog_level: debug\n")
	t.Setenv("TINYDI_STRICT", "false")
	t.Setenv("TINYDI_LOG_LEVEL", "warn")

	cfg, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, "TINYDI_STRICT")
	unsetEnv(t, "TINYDI_LOG_LEVEL")

	path := writeFile(t, ".env", "TINYDI_STRICT=true\nTINYDI_LOG_LEVEL=error\n")

	cfg, err := Load(WithEnvFile(path))
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	unsetEnv(t, "TINYDI_LOG_LEVEL")
	t.Setenv("TINYDI_STRICT", "false")

	path := writeFile(t, ".env", "TINYDI_STRICT=true\n")

	cfg, err := Load(WithEnvFile(path))
	require.NoError(t, err)
	assert.False(t, cfg.Strict)
}

func TestLoad_EnvFileLeavesEnvironmentUntouched(t *testing.T) {
	unsetEnv(t, "TINYDI_STRICT")
	unsetEnv(t, "TINYDI_LOG_LEVEL")
	unsetEnv(t, "TINYDI_UNRELATED")
	unsetEnv(t, "DATABASE_URL")

	path := writeFile(t, ".env", "TINYDI_STRICT=true\nTINYDI_UNRELATED=1\nDATABASE_URL=postgres://localhost\n")

	cfg, err := Load(WithEnvFile(path))
	require.NoError(t, err)
	assert.True(t, cfg.Strict)

	for _, name := range []string{"TINYDI_STRICT", "TINYDI_UNRELATED", "DATABASE_URL"} {
		_, set := os.LookupEnv(name)
		assert.False(t, set, "%s leaked into the environment", name)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := Load(WithConfigFile(missing + ".yml"))
	assert.Error(t, err)

	_, err = Load(WithEnvFile(missing + ".env"))
	assert.Error(t, err)
}

func TestContainer_Logger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "empty defaults to info", level: ""},
		{name: "debug", level: "debug"},
		{name: "error", level: "error"},
		{name: "invalid", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Container{LogLevel: tt.level}.Logger()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}
