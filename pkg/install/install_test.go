package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/devopsctl/devops-cli/pkg/download"
	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/formula"
	"github.com/devopsctl/devops-cli/pkg/runner"
	"github.com/devopsctl/devops-cli/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const binaryBody = "#!/bin/sh\necho devops-cli 1.0.0\n"

type fixture struct {
	formula   *formula.Formula
	installer *Installer
	recorder  *runner.Recorder
	binDir    string
}

func newFixture(t *testing.T, archiveName string, archive []byte, sum string) *fixture {
	t.Helper()
	srv := testutil.ServeFiles(t, map[string][]byte{"/" + archiveName: archive})

	f := &formula.Formula{
		Name:     "devops-cli",
		Desc:     "A DevOps automation CLI tool",
		Homepage: "https://example.com",
		Version:  "1.0.0",
		Binary:   "devops-cli",
		TestArgs: []string{"--version"},
		Platforms: map[string]formula.Artifact{
			formula.Linux:  {URL: srv.URL + "/" + archiveName, SHA256: sum, Arch: "amd64"},
			formula.Darwin: {URL: srv.URL + "/" + archiveName, SHA256: sum, Arch: "amd64"},
		},
	}

	rec := runner.NewRecorder()
	binDir := filepath.Join(t.TempDir(), "bin")
	return &fixture{
		formula: f,
		installer: &Installer{
			BinDir:   binDir,
			CacheDir: t.TempDir(),
			Download: download.NewClient("test"),
			Runner:   rec,
		},
		recorder: rec,
		binDir:   binDir,
	}
}

func assertInstalled(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, binaryBody, string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, BinaryMode, info.Mode().Perm())
	}
}

func TestInstallTarGz(t *testing.T) {
	archive := testutil.TarGz(t, map[string]string{
		"devops-cli-1.0.0/README.md":  "docs",
		"devops-cli-1.0.0/devops-cli": binaryBody,
	})
	fx := newFixture(t, "devops-cli-linux-amd64.tar.gz", archive, testutil.SHA256(archive))

	res, err := fx.installer.Install(context.Background(), fx.formula, formula.Linux)
	require.NoError(t, err)

	dest := filepath.Join(fx.binDir, "devops-cli")
	assert.Equal(t, dest, res.Binary)
	assert.Equal(t, testutil.SHA256(archive), res.SHA256)
	assertInstalled(t, dest)
	assert.Equal(t, []string{dest + " --version"}, fx.recorder.Lines())
}

func TestInstallZip(t *testing.T) {
	archive := testutil.Zip(t, map[string]string{"devops-cli": binaryBody})
	fx := newFixture(t, "devops-cli-darwin-amd64.zip", archive, testutil.SHA256(archive))

	res, err := fx.installer.Install(context.Background(), fx.formula, formula.Darwin)
	require.NoError(t, err)
	assertInstalled(t, res.Binary)
}

func TestInstallRawBinary(t *testing.T) {
	fx := newFixture(t, "devops-cli", []byte(binaryBody), testutil.SHA256([]byte(binaryBody)))

	res, err := fx.installer.Install(context.Background(), fx.formula, formula.Linux)
	require.NoError(t, err)
	assertInstalled(t, res.Binary)
}

func TestInstallChecksumMismatch(t *testing.T) {
	archive := testutil.TarGz(t, map[string]string{"devops-cli": binaryBody})
	fx := newFixture(t, "devops-cli.tar.gz", archive, testutil.SHA256([]byte("tampered")))

	_, err := fx.installer.Install(context.Background(), fx.formula, formula.Linux)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChecksumMismatch))

	_, statErr := os.Stat(filepath.Join(fx.binDir, "devops-cli"))
	assert.True(t, os.IsNotExist(statErr), "no binary should be installed")
	assert.Empty(t, fx.recorder.Lines())

	matches, _ := filepath.Glob(filepath.Join(fx.installer.CacheDir, "*", "*.tar.gz"))
	assert.Empty(t, matches, "corrupt download should be removed")
}

func TestInstallBinaryMissingFromArchive(t *testing.T) {
	archive := testutil.TarGz(t, map[string]string{"other-tool": binaryBody})
	fx := newFixture(t, "devops-cli.tar.gz", archive, testutil.SHA256(archive))

	_, err := fx.installer.Install(context.Background(), fx.formula, formula.Linux)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBinaryNotFound))
}

func TestInstallSmokeTestFailure(t *testing.T) {
	archive := testutil.TarGz(t, map[string]string{"devops-cli": binaryBody})
	fx := newFixture(t, "devops-cli.tar.gz", archive, testutil.SHA256(archive))
	fx.recorder.FailOn(filepath.Join(fx.binDir, "devops-cli"), fmt.Errorf("exit status 1"))

	_, err := fx.installer.Install(context.Background(), fx.formula, formula.Linux)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSmokeTestFailed))
}

func TestInstallUnsupportedPlatform(t *testing.T) {
	archive := testutil.TarGz(t, map[string]string{"devops-cli": binaryBody})
	fx := newFixture(t, "devops-cli.tar.gz", archive, testutil.SHA256(archive))
	delete(fx.formula.Platforms, formula.Darwin)

	_, err := fx.installer.Install(context.Background(), fx.formula, formula.Darwin)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlatformUnsupported))
}

func TestInstallRejectsInvalidFormula(t *testing.T) {
	archive := testutil.TarGz(t, map[string]string{"devops-cli": binaryBody})
	fx := newFixture(t, "devops-cli.tar.gz", archive, "not-a-sum")

	_, err := fx.installer.Install(context.Background(), fx.formula, formula.Linux)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFormulaInvalid))
}

func TestVerifyChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devops-cli")
	require.NoError(t, os.WriteFile(path, []byte(binaryBody), 0644))

	sum, err := FileChecksum(path)
	require.NoError(t, err)
	assert.Equal(t, testutil.SHA256([]byte(binaryBody)), sum)
	assert.NoError(t, VerifyChecksum(path, sum))
	assert.True(t, errors.IsErrorCode(VerifyChecksum(path, testutil.SHA256(nil)), errors.ErrChecksumMismatch))
}
