package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/devopsctl/devops-cli/pkg/runner"
	"github.com/google/renameio/v2"
)

// DefaultCommitMessage is used by Push when no message is given
const DefaultCommitMessage = "Add CI/CD pipeline"

// CreateOptions controls where and how a pipeline file is created
type CreateOptions struct {
	// Dir is the workflow directory, created if missing
	Dir    string
	Branch string
}

// Create renders the template called name into <Dir>/<name>.yml and returns the file path.
// An existing file is replaced atomically.
func Create(name string, opts CreateOptions) (string, error) {
	logger := logging.GetLogger("pipeline")

	t, err := Lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := Render(&buf, t, RenderOptions{Branch: opts.Branch}); err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create pipeline directory %s", opts.Dir)
	}

	path := filepath.Join(opts.Dir, name+".yml")
	if _, err := os.Stat(path); err == nil {
		logger.Warn().Str("path", path).Msg("Replacing existing pipeline file")
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write pipeline %s", path)
	}

	logger.Info().Str("template", name).Str("path", path).Msg("Pipeline created")
	return path, nil
}

// PushOptions describes the git commit and push of the workflow directory
type PushOptions struct {
	// RepoDir is the repository root the git commands run in
	RepoDir string
	// PipelineDir is the path added to the commit
	PipelineDir string
	Message     string
	Remote      string
	Branch      string
}

// PushCommands returns the git commands Push runs, in order
func PushCommands(opts PushOptions) []runner.Command {
	message := opts.Message
	if message == "" {
		message = DefaultCommitMessage
	}
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}
	branch := opts.Branch
	if branch == "" {
		branch = "main"
	}

	pipelineDir := opts.PipelineDir
	if rel, err := filepath.Rel(opts.RepoDir, pipelineDir); err == nil && opts.RepoDir != "" {
		pipelineDir = rel
	}
	pipelineDir = filepath.ToSlash(pipelineDir) + "/"

	return []runner.Command{
		{Name: "git", Args: []string{"add", pipelineDir}, Dir: opts.RepoDir},
		{Name: "git", Args: []string{"commit", "-m", message}, Dir: opts.RepoDir},
		{Name: "git", Args: []string{"push", remote, branch}, Dir: opts.RepoDir},
	}
}

// Push commits the workflow directory and pushes it, stopping at the first failing command
func Push(ctx context.Context, r runner.Runner, opts PushOptions) error {
	logger := logging.GetLogger("pipeline")

	for _, cmd := range PushCommands(opts) {
		logger.Info().Str("command", cmd.String()).Msg("Running git")
		if err := r.Run(ctx, cmd); err != nil {
			return errors.Wrapf(err, errors.ErrCommandFailed, "git command failed: %s", cmd.String())
		}
	}
	return nil
}
