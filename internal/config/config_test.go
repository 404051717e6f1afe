package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/querydiff/parser"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "auto", "")
	flags.String("output", "text", "")
	flags.Bool("no-color", false, "")
	flags.Bool("normalize", true, "")
	flags.Bool("ignore-whitespace", true, "")
	flags.Bool("semantic", true, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Dialect)
	assert.Equal(t, "text", cfg.Output)
	assert.True(t, cfg.Color)
	assert.True(t, cfg.Normalize)
	assert.True(t, cfg.IgnoreWhitespace)
	assert.True(t, cfg.SemanticDiff)
	assert.Equal(t, parser.DialectAuto, cfg.ParsedDialect())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "querydiff.yaml", `
dialect: mysql
output: json
ignore_whitespace: false
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, "json", cfg.Output)
	assert.False(t, cfg.IgnoreWhitespace)
	assert.True(t, cfg.Normalize)
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".querydiff.yaml", "output: yaml\n")
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("QUERYDIFF_DIALECT", "clickhouse")
	t.Setenv("QUERYDIFF_SEMANTIC_DIFF", "false")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, parser.DialectClickHouse, cfg.ParsedDialect())
	assert.False(t, cfg.SemanticDiff)
}

func TestLoadFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "querydiff.yaml", "dialect: mysql\nnormalize: true\n")
	t.Setenv("QUERYDIFF_OUTPUT", "yaml")

	flags := testFlags(t, "--dialect", "clickhouse", "--normalize=false", "--no-color")
	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "clickhouse", cfg.Dialect)
	assert.False(t, cfg.Normalize)
	assert.False(t, cfg.Color)
	// Unset flags fall back to the environment.
	assert.Equal(t, "yaml", cfg.Output)
	assert.True(t, cfg.IgnoreWhitespace)
}

func TestLoadInvalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("QUERYDIFF_OUTPUT", "xml")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid output "xml"`)

	t.Setenv("QUERYDIFF_OUTPUT", "text")
	t.Setenv("QUERYDIFF_DIALECT", "oracle")
	_, err = Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestDiffConfig(t *testing.T) {
	cfg := &Config{Dialect: "mysql", Normalize: true, SemanticDiff: false, IgnoreWhitespace: true}
	dc := cfg.DiffConfig()
	assert.Equal(t, parser.DialectMySQL, dc.Dialect)
	assert.True(t, dc.Normalize)
	assert.True(t, dc.IgnoreWhitespace)
	assert.False(t, dc.SemanticDiff)
}
