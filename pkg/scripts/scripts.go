// Package scripts lists and runs bash automation scripts.
package scripts

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/devopsctl/devops-cli/pkg/runner"
)

// Extension identifies runnable scripts
const Extension = ".sh"

// Script is a runnable file found by List
type Script struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// List returns the *.sh files directly inside dir, sorted by name.
// A directory without scripts yields an empty slice.
func List(dir string) ([]Script, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileNotFound, "directory not found: %s", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "not a directory: %s", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "error listing scripts")
	}

	found := make([]Script, 0, len(matches))
	for _, m := range matches {
		st, err := os.Stat(m)
		if err != nil || st.IsDir() {
			continue
		}
		found = append(found, Script{Name: filepath.Base(m), Path: m})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// Executor runs scripts through bash
type Executor struct {
	Runner runner.Runner
	// Shell defaults to "bash"
	Shell string
}

// Run executes the script at path with args. The script's directory is not
// changed into; scripts run from the caller's working directory.
func (e *Executor) Run(ctx context.Context, path string, args []string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrFileNotFound, "script not found: %s", path).WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "script is a directory: %s", path)
	}

	shell := e.Shell
	if shell == "" {
		shell = "bash"
	}

	logger := logging.GetLogger("scripts")
	logger.Info().Str("script", path).Strs("args", args).Msg("Running script")

	cmd := runner.Command{
		Name: shell,
		Args: append([]string{path}, args...),
		Env:  map[string]string{"DEVOPS_CLI_SCRIPT": filepath.Base(path)},
	}
	if err := e.Runner.Run(ctx, cmd); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "script execution failed: %s", path)
	}
	return nil
}
