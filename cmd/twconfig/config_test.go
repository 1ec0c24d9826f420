package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".twconfig.yaml")
	configContent := `
file: web/tailwind.config.ts
verbose: true

validate:
  strict: true
  output-format: json

match:
  base: web
  gitignore: true
  fail-unmatched: true

watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "web/tailwind.config.ts", k.String("file"))
	assert.True(t, k.Bool("verbose"))

	v := buildValidateSettings()
	assert.True(t, v.Strict)
	assert.Equal(t, "json", v.OutputFormat)

	m := buildMatchSettings("web/tailwind.config.ts")
	assert.Equal(t, matchSettings{Base: "web", GitIgnore: true, FailUnmatched: true}, m)

	assert.Equal(t, time.Second, getDurationWithFallback("debounce", "watch.debounce", 0))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/.twconfig.yaml"))

	v := buildValidateSettings()
	assert.False(t, v.Strict)
	assert.Empty(t, v.OutputFormat)

	m := buildMatchSettings(filepath.Join("site", "tailwind.config.js"))
	assert.Equal(t, "site", m.Base)
	assert.False(t, m.GitIgnore)
	assert.False(t, m.FailUnmatched)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".twconfig.yaml")
	configContent := `
validate:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("TWCONFIG_VALIDATE_STRICT", "true")
	t.Setenv("TWCONFIG_FILE", "from-env.json")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, buildValidateSettings().Strict)
	assert.Equal(t, "from-env.json", k.String("file"))
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"TWCONFIG_FILE", "file"},
		{"TWCONFIG_QUIET", "quiet"},
		{"TWCONFIG_LOG_LEVEL", "log.level"},
		{"TWCONFIG_VALIDATE_STRICT", "validate.strict"},
		{"TWCONFIG_VALIDATE_OUTPUT_FORMAT", "validate.output-format"},
		{"TWCONFIG_MATCH_FAIL_UNMATCHED", "match.fail-unmatched"},
		{"TWCONFIG_WATCH_DEBOUNCE", "watch.debounce"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envKey(tt.env), tt.env)
	}
}

func TestEnvVarSetsHyphenatedKeys(t *testing.T) {
	resetKoanf()

	t.Setenv("TWCONFIG_MATCH_FAIL_UNMATCHED", "true")
	t.Setenv("TWCONFIG_VALIDATE_OUTPUT_FORMAT", "json")

	require.NoError(t, loadConfigFromPath("/nonexistent/.twconfig.yaml"))

	assert.True(t, buildMatchSettings("tailwind.config.ts").FailUnmatched)
	assert.Equal(t, "json", buildValidateSettings().OutputFormat)
}

func TestFlagOverridesConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".twconfig.yaml"), []byte("validate:\n  strict: true\n"), 0644))

	cmd := newValidateCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--strict=false"}))
	cmd.Flags().String("config", ".twconfig.yaml", "")

	require.NoError(t, loadConfig(cmd))
	assert.False(t, buildValidateSettings().Strict)
}

func TestUnsetFlagDoesNotShadowConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".twconfig.yaml"), []byte("validate:\n  strict: true\n"), 0644))

	cmd := newValidateCmd()
	require.NoError(t, cmd.Flags().Parse(nil))
	cmd.Flags().String("config", ".twconfig.yaml", "")

	require.NoError(t, loadConfig(cmd))
	assert.True(t, buildValidateSettings().Strict)
}

func TestResolveConfigPath(t *testing.T) {
	resetKoanf()
	dir := chdirTemp(t)

	_, err := resolveConfigPath(nil)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tailwind.config.json"), []byte("{}"), 0644))
	path, err := resolveConfigPath(nil)
	require.NoError(t, err)
	assert.Equal(t, "tailwind.config.json", path)

	path, err = resolveConfigPath([]string{"other.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", path)
}
