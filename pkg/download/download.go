// Package download fetches release artifacts over HTTP and computes their
// SHA-256 checksums.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/google/renameio/v2"
)

// DefaultTimeout bounds a single artifact download
const DefaultTimeout = 5 * time.Minute

// Client downloads artifacts
type Client struct {
	HTTP *http.Client
	// UserAgent is sent with every request
	UserAgent string
}

// NewClient creates a client with a long timeout suitable for release tarballs
func NewClient(userAgent string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: DefaultTimeout},
		UserAgent: userAgent,
	}
}

// Open starts a GET request for url and returns the response body.
// Non-2xx responses are reported as errors.
func (c *Client) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid download url %s", url)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "failed to download %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, errors.Newf(errors.ErrDownload, "failed to download %s: %s", url, resp.Status).
			WithDetail("status", resp.StatusCode)
	}
	return resp.Body, nil
}

// Checksum downloads url without storing it and returns its SHA-256
func (c *Client) Checksum(ctx context.Context, url string) (string, error) {
	body, err := c.Open(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	sum, err := Checksum(body)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDownload, "failed to read %s", url)
	}
	return sum, nil
}

// ToFile downloads url into path and returns the SHA-256 of what was written.
// The file only appears at path once the download is complete.
func (c *Client) ToFile(ctx context.Context, url, path string) (string, error) {
	logger := logging.GetLogger("download")
	start := time.Now()

	body, err := c.Open(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", path)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending download")
		}
	}()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(pending, h), body)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDownload, "failed to download %s", url)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to finalize %s", path)
	}

	logger.Info().
		Str("url", url).
		Str("path", path).
		Int64("bytes", n).
		Dur("duration", time.Since(start)).
		Msg("Downloaded artifact")
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Checksum returns the hex SHA-256 of everything read from r
func Checksum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileChecksum returns the hex SHA-256 of the file at path
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrFileNotFound, "file not found: %s", path)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", path)
	}
	defer f.Close()

	sum, err := Checksum(f)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to hash %s", path)
	}
	return sum, nil
}

// VerifyFile compares the file's SHA-256 with want (case-insensitive hex)
func VerifyFile(path, want string) error {
	got, err := FileChecksum(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, strings.TrimSpace(want)) {
		return errors.Newf(errors.ErrChecksumMismatch, "checksum mismatch: expected %s, got %s", want, got).
			WithDetail("path", path).
			WithDetail("expected", want).
			WithDetail("actual", got)
	}
	return nil
}

// UserAgent builds the User-Agent header value for the given version
func UserAgent(version string) string {
	return fmt.Sprintf("devops-cli/%s", version)
}
