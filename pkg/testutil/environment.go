package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Environment is an isolated set of devops-cli directories
type Environment struct {
	// Root is the temp dir holding everything else
	Root string

	ProjectDir string
	ConfigDir  string
	CacheDir   string
	BinDir     string
	StateDir   string

	t *testing.T
}

// NewEnvironment creates the directories and points the devops-cli
// environment variables at them. Variables are restored when the test ends.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root := t.TempDir()
	env := &Environment{
		Root:       root,
		ProjectDir: filepath.Join(root, "project"),
		ConfigDir:  filepath.Join(root, "config"),
		CacheDir:   filepath.Join(root, "cache"),
		BinDir:     filepath.Join(root, "bin"),
		StateDir:   filepath.Join(root, "state"),
		t:          t,
	}
	if err := os.MkdirAll(env.ProjectDir, 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	t.Setenv("DEVOPS_CLI_CONFIG_DIR", env.ConfigDir)
	t.Setenv("DEVOPS_CLI_CACHE_DIR", env.CacheDir)
	t.Setenv("DEVOPS_CLI_BIN_DIR", env.BinDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv("NO_COLOR", "1")

	return env
}

// Path returns rel joined onto the project dir
func (e *Environment) Path(rel string) string {
	return filepath.Join(e.ProjectDir, rel)
}

// Mkdir creates rel under the project dir
func (e *Environment) Mkdir(rel string) string {
	e.t.Helper()
	dir := e.Path(rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("Failed to create %s: %v", dir, err)
	}
	return dir
}

// WriteFile writes content to rel under the project dir, creating parents
func (e *Environment) WriteFile(rel, content string) string {
	e.t.Helper()
	path := e.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// UserConfigFile is where `config set` writes inside this environment
func (e *Environment) UserConfigFile() string {
	return filepath.Join(e.ConfigDir, "config.toml")
}
