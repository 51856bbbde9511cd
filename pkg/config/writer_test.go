package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPersistsAndReloads(t *testing.T) {
	userFile := filepath.Join(t.TempDir(), "devops-cli", "config.toml")

	require.NoError(t, Set(userFile, "git-branch", "develop"))
	require.NoError(t, Set(userFile, "terraform-path", "/usr/local/bin/tofu"))

	loaded, err := Load(LoadOptions{UserFile: userFile, Environ: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "develop", loaded.Git.Branch)
	assert.Equal(t, "/usr/local/bin/tofu", loaded.Terraform.Path)
	assert.Equal(t, SourceUser, loaded.Source("git.branch"))
}

func TestSetKeepsOtherValues(t *testing.T) {
	userFile := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, userFile, "[git]\nremote = \"upstream\"\n\n[workspace]\ndir = \"/srv/infra\"\n")

	require.NoError(t, Set(userFile, "git.branch", "trunk"))

	loaded, err := Load(LoadOptions{UserFile: userFile, Environ: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "upstream", loaded.Git.Remote)
	assert.Equal(t, "trunk", loaded.Git.Branch)
	assert.Equal(t, "/srv/infra", loaded.Workspace.Dir)
}

func TestSetRejectsInvalidInput(t *testing.T) {
	userFile := filepath.Join(t.TempDir(), "config.toml")

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "editor", "vim"},
		{"empty value", "git-branch", "  "},
		{"bad duration", "command-timeout", "forever"},
		{"negative duration", "command-timeout", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Set(userFile, tt.key, tt.value)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}

	_, err := os.Stat(userFile)
	assert.True(t, os.IsNotExist(err), "rejected values must not create the file")
}

func TestKeys(t *testing.T) {
	names := KeyNames()
	assert.Equal(t, []string{
		"command-timeout",
		"formula-file",
		"git-branch",
		"git-remote",
		"pipeline-dir",
		"terraform-path",
		"workspace-dir",
	}, names)

	loaded, err := Load(LoadOptions{Environ: []string{}})
	require.NoError(t, err)
	for _, k := range Keys() {
		assert.NotEmpty(t, k.Value(&loaded.Config), k.Name)
	}
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[git]")
	assert.Contains(t, content, `# branch = "main"`)
	assert.NotContains(t, content, "\nbranch = ")
}
