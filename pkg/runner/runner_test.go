package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	stderrors "errors"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRunnerStreamsOutput(t *testing.T) {
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}

	err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `echo "hello $GREETING_TARGET"; echo oops >&2`},
		Env:  map[string]string{"GREETING_TARGET": "world"},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecRunnerWorkingDir(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout}

	require.NoError(t, r.Run(context.Background(), Command{Name: "pwd", Dir: dir}))

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecRunnerMissingDir(t *testing.T) {
	r := &ExecRunner{}
	err := r.Run(context.Background(), Command{Name: "true", Dir: filepath.Join(t.TempDir(), "missing")})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestExecRunnerFailure(t *testing.T) {
	skipOnWindows(t)

	r := &ExecRunner{Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 3"}})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Equal(t, 3, errors.GetErrorDetails(err)["exitCode"])
}

func TestExecRunnerTimeout(t *testing.T) {
	skipOnWindows(t)

	r := &ExecRunner{Timeout: 50 * time.Millisecond}
	err := r.Run(context.Background(), Command{Name: "sleep", Args: []string{"5"}})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandTimeout))
}

func TestExecRunnerDryRun(t *testing.T) {
	var stdout bytes.Buffer
	marker := filepath.Join(t.TempDir(), "marker")
	r := &ExecRunner{Stdout: &stdout, DryRun: true}

	err := r.Run(context.Background(), Command{Name: "touch", Args: []string{marker}})
	require.NoError(t, err)

	assert.Equal(t, "[dry-run] touch "+marker+"\n", stdout.String())
	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecRunnerLogsCommand(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	r := &ExecRunner{Stdout: &bytes.Buffer{}, DryRun: true, logger: &logger}

	require.NoError(t, r.Run(context.Background(), Command{Name: "git", Args: []string{"status"}, Dir: "/repo"}))

	assert.Contains(t, logs.String(), `"command":"git"`)
	assert.Contains(t, logs.String(), `"workingDir":"/repo"`)
	assert.Contains(t, logs.String(), `"dryRun":true`)
	assert.Contains(t, logs.String(), "Executing command")
}

func TestTailBuffer(t *testing.T) {
	tail := &tailBuffer{max: 8}

	n, err := tail.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, _ = tail.Write([]byte("defgh"))
	assert.Equal(t, "abcdefgh", tail.String())

	_, _ = tail.Write([]byte("ij"))
	assert.Equal(t, "cdefghij", tail.String())

	n, _ = tail.Write([]byte("0123456789"))
	assert.Equal(t, 10, n)
	assert.Equal(t, "23456789", tail.String())
	assert.LessOrEqual(t, len(tail.buf), 8)
}

func TestExecRunnerRequiresName(t *testing.T) {
	err := (&ExecRunner{}).Run(context.Background(), Command{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRecorder(t *testing.T) {
	boom := stderrors.New("boom")
	rec := NewRecorder().FailOn("git push origin main", boom)

	require.NoError(t, rec.Run(context.Background(), Command{Name: "git", Args: []string{"add", "."}}))
	err := rec.Run(context.Background(), Command{Name: "git", Args: []string{"push", "origin", "main"}})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"git add .", "git push origin main"}, rec.Lines())
}
