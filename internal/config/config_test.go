package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns the conventional Maven-style layout
// - Load() uses defaults when no config file exists
// - Load() reads csimple.yaml from the project directory
// - Load() merges file values with defaults
// - An explicit config file is read from its exact path, and its absence
//   is an error (unlike the searched csimple.yaml)
// - Environment variables override file values
// - Load() returns an error for malformed YAML
// - Load() returns an error for invalid configurations
// - Validate() accepts the defaults
// - Validate() rejects empty directories, missing sources, and runs with
//   every dialect disabled
// - Validate() reports several problems at once
// - ToGeneratorConfig resolves relative paths against the project directory

func TestDefault_ReturnsMavenLayout(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"src/main/java", "src/main/resources"}, cfg.Sources)
	assert.Equal(t, []string{"src/test/java", "src/test/resources"}, cfg.TestSources)
	assert.Equal(t, "src/generated/java", cfg.OutputDir)
	assert.Equal(t, "src/generated/resources", cfg.OutputResourceDir)
	assert.Equal(t, "src/main/resources", cfg.ResourceDir)
	assert.True(t, cfg.IncludeJava)
	assert.True(t, cfg.IncludeXML)
	assert.False(t, cfg.IncludeTests)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeYaml(t, dir, `output_dir: target/generated-sources/csimple
output_resource_dir: target/generated-resources/csimple
include_xml: false
includes:
  - "**/*Routes.java"
excludes:
  - "**/Legacy*.java"
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "target/generated-sources/csimple", cfg.OutputDir)
	assert.Equal(t, "target/generated-resources/csimple", cfg.OutputResourceDir)
	assert.False(t, cfg.IncludeXML)
	assert.Equal(t, []string{"**/*Routes.java"}, cfg.Includes)
	assert.Equal(t, []string{"**/Legacy*.java"}, cfg.Excludes)

	// untouched keys keep their defaults
	assert.Equal(t, Default().Sources, cfg.Sources)
	assert.True(t, cfg.IncludeJava)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: build/csimple\n"), 0o644))

	cfg, err := LoadFromFile(dir, path)
	require.NoError(t, err)
	assert.Equal(t, "build/csimple", cfg.OutputDir)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadFromFile(dir, filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeYaml(t, dir, "output_dir: from-file\n")

	t.Setenv("CSIMPLE_OUTPUT_DIR", "from-env")
	t.Setenv("CSIMPLE_INCLUDE_TEST", "true")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OutputDir)
	assert.True(t, cfg.IncludeTests)
}

func TestLoad_MalformedYaml(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeYaml(t, dir, "output_dir: [unclosed\n")

	_, err := LoadFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeYaml(t, dir, `output_dir: ""
`)

	_, err := LoadFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_RejectsMissingValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.OutputDir = ""
	require.ErrorIs(t, Validate(cfg), ErrEmptyOutputDir)

	cfg = Default()
	cfg.OutputResourceDir = " "
	require.ErrorIs(t, Validate(cfg), ErrEmptyOutputResourceDir)

	cfg = Default()
	cfg.ResourceDir = ""
	require.ErrorIs(t, Validate(cfg), ErrEmptyResourceDir)

	cfg = Default()
	cfg.Sources = nil
	require.ErrorIs(t, Validate(cfg), ErrNoSources)

	cfg = Default()
	cfg.IncludeJava = false
	cfg.IncludeXML = false
	require.ErrorIs(t, Validate(cfg), ErrNoDialects)
}

func TestValidate_ReportsMultipleProblems(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.OutputDir = ""
	cfg.ResourceDir = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "output_dir is required")
	assert.Contains(t, err.Error(), "resource_dir is required")
}

func TestToGeneratorConfig_ResolvesPaths(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Includes = []string{"**/*Routes.java"}
	cfg.OutputDir = "/absolute/out"

	gen := cfg.ToGeneratorConfig("/work/project")

	assert.Equal(t, []string{
		filepath.Join("/work/project", "src/main/java"),
		filepath.Join("/work/project", "src/main/resources"),
	}, gen.Roots)
	assert.Equal(t, []string{
		filepath.Join("/work/project", "src/test/java"),
		filepath.Join("/work/project", "src/test/resources"),
	}, gen.TestRoots)
	assert.Equal(t, "/absolute/out", gen.OutputDir, "absolute paths pass through")
	assert.Equal(t, filepath.Join("/work/project", "src/generated/resources"), gen.OutputResourceDir)
	assert.Equal(t, filepath.Join("/work/project", "src/main/resources"), gen.ResourceDir)
	assert.True(t, gen.IncludeJava)
	assert.True(t, gen.IncludeXML)
	assert.False(t, gen.IncludeTests)
	assert.Equal(t, []string{"**/*Routes.java"}, gen.Includes)
}

func writeYaml(t *testing.T, dir, content string) {
	t.Helper()

	path := filepath.Join(dir, "csimple.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
