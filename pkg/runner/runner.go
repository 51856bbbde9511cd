// Package runner executes external programs (terraform, bash, git) on behalf
// of the CLI commands.
package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/rs/zerolog"
)

// Command describes one external program invocation
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory
	Dir string
	// Env is appended to the current environment as KEY=VALUE pairs
	Env map[string]string
	// Stdin is connected to the child when set
	Stdin io.Reader
}

// String renders the command line for logs and dry-run output
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner runs commands
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec, streaming their output
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	// DryRun logs and prints commands without running them
	DryRun bool
	// Timeout bounds each command; zero means no limit beyond ctx
	Timeout time.Duration

	logger *zerolog.Logger
}

// NewExecRunner creates a runner writing child output to the process stdout/stderr
func NewExecRunner(dryRun bool, timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		DryRun:  dryRun,
		Timeout: timeout,
	}
}

func (r *ExecRunner) log() *zerolog.Logger {
	if r.logger == nil {
		l := logging.GetLogger("runner")
		r.logger = &l
	}
	return r.logger
}

// Run executes cmd and waits for it to finish
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if cmd.Name == "" {
		return errors.New(errors.ErrInvalidInput, "command name is required")
	}

	logging.LogCommand(r.log().With().Bool("dryRun", r.DryRun).Logger(), cmd.Name, cmd.Args, cmd.Dir)

	if r.DryRun {
		fmt.Fprintf(r.stdout(), "[dry-run] %s\n", cmd.String())
		return nil
	}

	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); os.IsNotExist(err) {
			return errors.Newf(errors.ErrFileNotFound, "working directory does not exist: %s", cmd.Dir).
				WithDetail("dir", cmd.Dir)
		}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	c.Env = os.Environ()
	for key, value := range cmd.Env {
		c.Env = append(c.Env, fmt.Sprintf("%s=%s", key, value))
	}

	stderrTail := &tailBuffer{max: stderrTailBytes}
	c.Stdout = r.stdout()
	c.Stderr = io.MultiWriter(r.stderr(), stderrTail)

	start := time.Now()
	err := c.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.Wrapf(err, errors.ErrCommandTimeout, "command timed out after %s: %s", r.Timeout, cmd.String())
		}

		r.log().Error().
			Err(err).
			Str("command", cmd.String()).
			Str("stderr", lastLines(stderrTail.String(), 20)).
			Dur("duration", elapsed).
			Msg("Command execution failed")

		return errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", cmd.String()).
			WithDetail("exitCode", exitCode(err))
	}

	r.log().Debug().
		Str("command", cmd.String()).
		Dur("duration", elapsed).
		Msg("Command executed successfully")
	return nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout == nil {
		return io.Discard
	}
	return r.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr == nil {
		return io.Discard
	}
	return r.Stderr
}

// stderrTailBytes bounds how much of a failing command's stderr is kept for the log
const stderrTailBytes = 8 << 10

// tailBuffer keeps the last max bytes written to it
type tailBuffer struct {
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if n >= t.max {
		t.buf = append(t.buf[:0], p[n-t.max:]...)
		return n, nil
	}
	if over := len(t.buf) + n - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	t.buf = append(t.buf, p...)
	return n, nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
