// Package install downloads a formula's release artifact, verifies its
// checksum and installs the binary it contains.
package install

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/download"
	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/formula"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/devopsctl/devops-cli/pkg/runner"
)

// Installer installs formula binaries into BinDir
type Installer struct {
	BinDir string
	// CacheDir holds downloaded archives
	CacheDir string
	Download *download.Client
	// Runner executes the smoke test; nil skips it
	Runner runner.Runner
}

// Result describes a completed installation
type Result struct {
	Binary  string
	Version string
	OS      string
	SHA256  string
	Archive string
}

// Install fetches the artifact for goos, verifies it against the formula
// checksum, installs the binary and runs its smoke test
func (i *Installer) Install(ctx context.Context, f *formula.Formula, goos string) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if i.BinDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "bin directory is required")
	}
	artifact, err := f.Platform(goos)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("install")
	done := logging.LogOperationStart(logger, "install")

	archive := i.archivePath(f, goos, artifact)
	client := i.Download
	if client == nil {
		client = download.NewClient(download.UserAgent(f.Version))
	}

	sum, err := client.ToFile(ctx, artifact.URL, archive)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(sum, artifact.SHA256) {
		if rmErr := os.Remove(archive); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", archive).Msg("Failed to remove corrupt download")
		}
		return nil, errors.Newf(errors.ErrChecksumMismatch,
			"checksum mismatch for %s: expected %s, got %s", artifact.URL, artifact.SHA256, sum).
			WithDetail("expected", artifact.SHA256).
			WithDetail("actual", sum)
	}
	logger.Debug().Str("sha256", sum).Msg("Checksum verified")

	dest := filepath.Join(i.BinDir, f.Binary)
	if err := Extract(archive, f.Binary, dest); err != nil {
		return nil, err
	}

	if i.Runner != nil {
		smoke := runner.Command{Name: dest, Args: f.TestArgs}
		if err := i.Runner.Run(ctx, smoke); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSmokeTestFailed, "smoke test failed: %s", smoke.String())
		}
	}

	done()
	logger.Info().Str("binary", dest).Str("version", f.Version).Msg("Installed")
	return &Result{
		Binary:  dest,
		Version: f.Version,
		OS:      goos,
		SHA256:  sum,
		Archive: archive,
	}, nil
}

func (i *Installer) archivePath(f *formula.Formula, goos string, a formula.Artifact) string {
	name := path.Base(a.URL)
	if name == "." || name == "/" || name == "" {
		name = f.Binary
	}
	if idx := strings.IndexAny(name, "?#"); idx >= 0 {
		name = name[:idx]
	}
	cache := i.CacheDir
	if cache == "" {
		cache = os.TempDir()
	}
	return filepath.Join(cache, f.Name+"-"+f.Version+"-"+goos, name)
}

// VerifyChecksum reports a CHECKSUM_MISMATCH error when the file at path does
// not hash to want
func VerifyChecksum(path, want string) error {
	return download.VerifyFile(path, want)
}

// FileChecksum returns the SHA-256 of the file at path
func FileChecksum(path string) (string, error) {
	return download.FileChecksum(path)
}
