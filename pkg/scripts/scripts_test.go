package scripts

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"deploy.sh", "backup.sh", "README.md", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/bash\n"), 0755))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "weird.sh"), 0755))

	got, err := List(dir)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "backup.sh", got[0].Name)
	assert.Equal(t, "deploy.sh", got[1].Name)
	assert.Equal(t, filepath.Join(dir, "backup.sh"), got[0].Path)
}

func TestListEmptyAndMissing(t *testing.T) {
	got, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = List(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestExecutorRunRecordsCommand(t *testing.T) {
	script := filepath.Join(t.TempDir(), "deploy.sh")
	require.NoError(t, os.WriteFile(script, []byte("echo deploy\n"), 0755))

	rec := runner.NewRecorder()
	e := &Executor{Runner: rec}

	require.NoError(t, e.Run(context.Background(), script, []string{"staging"}))

	require.Len(t, rec.Commands, 1)
	assert.Equal(t, "bash", rec.Commands[0].Name)
	assert.Equal(t, []string{script, "staging"}, rec.Commands[0].Args)
	assert.Equal(t, "deploy.sh", rec.Commands[0].Env["DEVOPS_CLI_SCRIPT"])
}

func TestExecutorMissingScript(t *testing.T) {
	rec := runner.NewRecorder()
	e := &Executor{Runner: rec}

	err := e.Run(context.Background(), filepath.Join(t.TempDir(), "nope.sh"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.Empty(t, rec.Commands)
}

func TestExecutorRunsRealBash(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}

	script := filepath.Join(t.TempDir(), "hello.sh")
	require.NoError(t, os.WriteFile(script, []byte(`echo "hello $1 from $DEVOPS_CLI_SCRIPT"`+"\n"), 0644))

	var out bytes.Buffer
	e := &Executor{Runner: &runner.ExecRunner{Stdout: &out}}

	require.NoError(t, e.Run(context.Background(), script, []string{"ops"}))
	assert.Equal(t, "hello ops from hello.sh\n", out.String())
}
