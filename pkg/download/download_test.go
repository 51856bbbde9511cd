package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = "release artifact bytes"

func sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/artifact.tar.gz":
			assert.Equal(t, "devops-cli/1.2.3", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(payload))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChecksum(t *testing.T) {
	got, err := Checksum(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", got)
}

func TestClientChecksum(t *testing.T) {
	srv := newServer(t)
	c := NewClient(UserAgent("1.2.3"))

	got, err := c.Checksum(context.Background(), srv.URL+"/artifact.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, sum(payload), got)
}

func TestClientNotFound(t *testing.T) {
	srv := newServer(t)
	c := NewClient(UserAgent("1.2.3"))

	_, err := c.Checksum(context.Background(), srv.URL+"/missing.tar.gz")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDownload))
	assert.Equal(t, http.StatusNotFound, errors.GetErrorDetails(err)["status"])
}

func TestClientToFile(t *testing.T) {
	srv := newServer(t)
	c := NewClient(UserAgent("1.2.3"))
	path := filepath.Join(t.TempDir(), "cache", "artifact.tar.gz")

	got, err := c.ToFile(context.Background(), srv.URL+"/artifact.tar.gz", path)
	require.NoError(t, err)
	assert.Equal(t, sum(payload), got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestClientToFileFailureLeavesNothing(t *testing.T) {
	srv := newServer(t)
	c := NewClient(UserAgent("1.2.3"))
	path := filepath.Join(t.TempDir(), "missing.tar.gz")

	_, err := c.ToFile(context.Background(), srv.URL+"/missing.tar.gz", path)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestClientCancelledContext(t *testing.T) {
	srv := newServer(t)
	c := NewClient(UserAgent("1.2.3"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Checksum(ctx, srv.URL+"/artifact.tar.gz")
	assert.True(t, errors.IsErrorCode(err, errors.ErrDownload))
}

func TestVerifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	require.NoError(t, VerifyFile(path, sum(payload)))
	require.NoError(t, VerifyFile(path, strings.ToUpper(sum(payload))))

	err := VerifyFile(path, sum("something else"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChecksumMismatch))

	_, err = FileChecksum(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}
