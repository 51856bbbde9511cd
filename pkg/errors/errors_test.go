package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain",
			err:  errors.New(errors.ErrTemplateNotFound, "unknown template: cobol"),
			want: "[TEMPLATE_NOT_FOUND] unknown template: cobol",
		},
		{
			name: "formatted",
			err:  errors.Newf(errors.ErrPlatformUnsupported, "no artifact for %s", "windows"),
			want: "[PLATFORM_UNSUPPORTED] no artifact for windows",
		},
		{
			name: "wrapped",
			err:  errors.Wrap(stderrors.New("connection refused"), errors.ErrDownload, "failed to fetch"),
			want: "[DOWNLOAD] failed to fetch: connection refused",
		},
		{
			name: "wrapped formatted",
			err:  errors.Wrapf(stderrors.New("exit status 1"), errors.ErrCommandFailed, "terraform %s failed", "plan"),
			want: "[COMMAND_FAILED] terraform plan failed: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "never"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "never %d", 1))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrChecksumMismatch, "checksum mismatch").
		WithDetail("want", "abc").
		WithDetails(map[string]interface{}{"got": "def", "path": "/tmp/a.tar.gz"})

	assert.Equal(t, map[string]interface{}{
		"want": "abc",
		"got":  "def",
		"path": "/tmp/a.tar.gz",
	}, errors.GetErrorDetails(err))

	bare := &errors.Error{Code: errors.ErrInternal}
	bare.WithDetail("k", "v")
	assert.Equal(t, "v", bare.Details["k"])

	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestUnwrapChain(t *testing.T) {
	root := stderrors.New("no such host")
	download := errors.Wrap(root, errors.ErrDownload, "failed to fetch").WithDetail("url", "https://example.com")
	cli := fmt.Errorf("self-install failed: %w", download)

	assert.True(t, stderrors.Is(cli, root))

	var coded *errors.Error
	require.True(t, stderrors.As(cli, &coded))
	assert.Equal(t, errors.ErrDownload, coded.Code)
	assert.Equal(t, "https://example.com", errors.GetErrorDetails(cli)["url"])
}

func TestIsMatchesCode(t *testing.T) {
	err := errors.Newf(errors.ErrFileNotFound, "script not found: %s", "deploy.sh")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrFileNotFound, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrFileAccess, "")))
	assert.False(t, stderrors.Is(err, stderrors.New("script not found")))
}

func TestIsErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrChecksumMismatch, "checksum mismatch")
	outer := errors.Wrap(inner, errors.ErrDownload, "failed to download")
	wrapped := fmt.Errorf("self-install failed: %w", outer)

	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"direct", inner, errors.ErrChecksumMismatch, true},
		{"outer code", wrapped, errors.ErrDownload, true},
		{"inner code through fmt and Error", wrapped, errors.ErrChecksumMismatch, true},
		{"absent code", wrapped, errors.ErrExtract, false},
		{"plain error", stderrors.New("boom"), errors.ErrInternal, false},
		{"nil", nil, errors.ErrInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrConfigValid, "unknown configuration key: colour")
	outer := errors.Wrap(inner, errors.ErrConfigWrite, "failed to set")

	assert.Equal(t, errors.ErrConfigWrite, errors.GetErrorCode(fmt.Errorf("config: %w", outer)))
	assert.Equal(t, errors.ErrConfigValid, errors.GetErrorCode(inner))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}
