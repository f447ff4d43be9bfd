package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/fswatch/errors"
	"github.com/grovetools/fswatch/testutil"
)

const minimalConfig = `version: "1"
watch:
  roots: [src]
  include: ["**.go"]
`

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "fswatch.yml", minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, []string{"src"}, cfg.Watch.Roots)
	assert.Equal(t, "500ms", cfg.Poll.Interval)
	assert.Equal(t, filepath.Join(".fswatch", "state.yml"), cfg.State.Path)

	interval, err := cfg.Poll.IntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, interval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "fswatch.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("FSWATCH_TEST_ROOT", "generated")

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "fswatch.yml", `version: "1"
watch:
  roots: ["${FSWATCH_TEST_ROOT}/src"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"generated/src"}, cfg.Watch.Roots)
}

func TestOverrideFileMerge(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "fswatch.yml", `version: "1"
watch:
  roots: [src]
  include: ["**.go"]
poll:
  interval: 500ms
`)
	testutil.WriteFile(t, dir, "fswatch.override.toml", `[poll]
interval = "2s"

[watch]
ignore = ["**/testdata/**"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "2s", cfg.Poll.Interval)
	assert.Equal(t, []string{"**/testdata/**"}, cfg.Watch.Ignore)
	// Untouched values survive
	assert.Equal(t, []string{"src"}, cfg.Watch.Roots)
	assert.Equal(t, []string{"**.go"}, cfg.Watch.Include)
}

func TestFindConfigFileWalksUp(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "fswatch.yml", minimalConfig)
	nested := filepath.Join(dir, "a", "b", "c")
	testutil.WriteFile(t, dir, "a/b/c/placeholder.txt", "")

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fswatch.yml"), found)
}

func TestValidation(t *testing.T) {
	t.Run("rejects bad poll interval", func(t *testing.T) {
		dir := t.TempDir()
		path := testutil.WriteFile(t, dir, "fswatch.yml", `version: "1"
watch:
  paths: [Makefile]
poll:
  interval: sometimes
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
	})

	t.Run("rejects empty watch set", func(t *testing.T) {
		dir := t.TempDir()
		path := testutil.WriteFile(t, dir, "fswatch.yml", `version: "1"
watch: {}
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("rejects unsupported version", func(t *testing.T) {
		dir := t.TempDir()
		path := testutil.WriteFile(t, dir, "fswatch.yml", `version: "9"
watch:
  paths: [Makefile]
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})
}

func TestUnmarshalExtension(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "fswatch.yml", `version: "1"
watch:
  paths: [Makefile]
logging:
  level: debug
  format:
    preset: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	var logCfg struct {
		Level  string `yaml:"level"`
		Format struct {
			Preset string `yaml:"preset"`
		} `yaml:"format"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "json", logCfg.Format.Preset)

	// Missing sections decode to zero values without error
	var other struct {
		Anything string `yaml:"anything"`
	}
	require.NoError(t, cfg.UnmarshalExtension("absent", &other))
	assert.Empty(t, other.Anything)
}
