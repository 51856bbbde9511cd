package install

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/google/renameio/v2"
)

// BinaryMode is the permission set on installed binaries
const BinaryMode os.FileMode = 0755

// Extract installs the file called binary from archive into dest. Archives
// ending in .tar.gz, .tgz or .zip are searched for an entry with that base
// name; any other file is taken to be the binary itself.
func Extract(archive, binary, dest string) error {
	lower := strings.ToLower(archive)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return extractTarGz(archive, binary, dest)
	case strings.HasSuffix(lower, ".zip"):
		return extractZip(archive, binary, dest)
	default:
		f, err := os.Open(archive)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", archive)
		}
		defer f.Close()
		return writeBinary(f, dest)
	}
}

func extractTarGz(archive, binary, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", archive)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtract, "%s is not a gzip archive", archive)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtract, "failed to read %s", archive)
		}
		if hdr.Typeflag != tar.TypeReg || path.Base(hdr.Name) != binary {
			continue
		}
		return writeBinary(tr, dest)
	}
	return binaryNotFound(archive, binary)
}

func extractZip(archive, binary, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtract, "%s is not a zip archive", archive)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || path.Base(zf.Name) != binary {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtract, "failed to read %s from %s", zf.Name, archive)
		}
		defer rc.Close()
		return writeBinary(rc, dest)
	}
	return binaryNotFound(archive, binary)
}

func binaryNotFound(archive, binary string) error {
	return errors.Newf(errors.ErrBinaryNotFound, "binary %s not found in %s", binary, archive).
		WithDetail("archive", archive).
		WithDetail("binary", binary)
}

// writeBinary replaces dest atomically so a running copy is never truncated
func writeBinary(r io.Reader, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dest))
	}

	pending, err := renameio.NewPendingFile(dest, renameio.WithPermissions(BinaryMode))
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", dest)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := io.Copy(pending, r); err != nil {
		return errors.Wrapf(err, errors.ErrExtract, "failed to write %s", dest)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to install %s", dest)
	}
	return nil
}
