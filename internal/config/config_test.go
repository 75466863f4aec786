package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty working directory with an empty HOME and
// no TADA_* variables set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"TADA_FILE", "TADA_TITLE", "TADA_THEME", "TADA_LOG_LEVEL", "TADA_LOG_FORMAT", "TADA_LOG_TIME"} {
		t.Setenv(k, "")
	}
	return dir
}

func load(t *testing.T, args ...string) (*Config, *flag.FlagSet, error) {
	t.Helper()
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfg, err := Load(fs, args)
	return cfg, fs, err
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, fs, err := load(t, "ls")
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, cfg.File)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.False(t, cfg.Group)
	assert.False(t, cfg.LogTime)
	assert.Equal(t, "todos.json", cfg.File)
	assert.Empty(t, cfg.ConfigFiles)
	assert.Equal(t, []string{"ls"}, fs.Args())
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)

	home := os.Getenv("HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".tada"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".tada", "config.toml"),
		[]byte("title = \"User\"\ntheme = \"neon\"\nfile = \"user.json\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tada.toml"),
		[]byte("title = \"Project\"\ngroup = true\n"), 0o644))
	t.Setenv("TADA_THEME", "mono")

	cfg, _, err := load(t, "-file", "flag.json", "ls")
	require.NoError(t, err)
	assert.Equal(t, "Project", cfg.Title)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "flag.json", cfg.File)
	assert.True(t, cfg.Group)
	assert.Len(t, cfg.ConfigFiles, 2)
}

func TestLoadLogTime(t *testing.T) {
	isolate(t)

	t.Setenv("TADA_LOG_TIME", "yes")
	cfg, _, err := load(t)
	require.NoError(t, err)
	assert.True(t, cfg.LogTime)

	cfg, _, err = load(t, "-log-time=false")
	require.NoError(t, err)
	assert.False(t, cfg.LogTime)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown theme", args: []string{"-theme", "pink"}},
		{name: "unknown log level", args: []string{"-log-level", "loud"}},
		{name: "unknown log format", args: []string{"-log-format", "xml"}},
		{name: "empty title", args: []string{"-title", ""}},
		{name: "empty file", args: []string{"-file", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, _, err := load(t, tt.args...)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadBadConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tada.toml"), []byte("title = "), 0o644))

	_, _, err := load(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".tada.toml")
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", "todos.json"), expandPath("~/todos.json"))
	assert.Equal(t, "todos.json", expandPath("todos.json"))
}
