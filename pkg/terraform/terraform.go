// Package terraform drives the terraform binary for the workspace commands.
package terraform

import (
	"context"
	"os"
	"path/filepath"

	"github.com/devopsctl/devops-cli/pkg/confirm"
	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/devopsctl/devops-cli/pkg/runner"
)

// Action is a terraform subcommand managed by the CLI
type Action string

const (
	ActionInit    Action = "init"
	ActionPlan    Action = "plan"
	ActionApply   Action = "apply"
	ActionDestroy Action = "destroy"
)

// Prompts shown before destructive actions
const (
	PromptApply   = "Are you sure you want to apply these changes?"
	PromptDestroy = "Are you sure you want to destroy these resources?"
)

// ErrCancelled is returned when the user declines a confirmation
var ErrCancelled = errors.New(errors.ErrCancelled, "cancelled by user")

// Client runs terraform commands
type Client struct {
	// Binary is the terraform executable, "terraform" when empty
	Binary    string
	Runner    runner.Runner
	Confirmer confirm.Confirmer
}

// Options for a single terraform invocation
type Options struct {
	// Dir is the terraform working directory; empty means the current directory
	Dir string
	// ExtraArgs are passed through after the CLI-managed arguments
	ExtraArgs []string
}

// Init runs terraform init
func (c *Client) Init(ctx context.Context, opts Options) error {
	return c.Run(ctx, ActionInit, opts)
}

// Plan runs terraform plan
func (c *Client) Plan(ctx context.Context, opts Options) error {
	return c.Run(ctx, ActionPlan, opts)
}

// Apply asks for confirmation and runs terraform apply -auto-approve
func (c *Client) Apply(ctx context.Context, opts Options) error {
	return c.Run(ctx, ActionApply, opts)
}

// Destroy asks for confirmation and runs terraform destroy -auto-approve
func (c *Client) Destroy(ctx context.Context, opts Options) error {
	return c.Run(ctx, ActionDestroy, opts)
}

// Run executes action in opts.Dir
func (c *Client) Run(ctx context.Context, action Action, opts Options) error {
	logger := logging.GetLogger("terraform")

	dir, err := ResolveDir(opts.Dir)
	if err != nil {
		return err
	}

	args := []string{string(action)}
	if prompt, ok := confirmations[action]; ok {
		if err := c.confirm(prompt); err != nil {
			logger.Info().Str("action", string(action)).Str("dir", dir).Msg("Terraform action cancelled")
			return err
		}
		args = append(args, "-auto-approve")
	}
	args = append(args, opts.ExtraArgs...)

	binary := c.Binary
	if binary == "" {
		binary = "terraform"
	}

	logger.Info().Str("action", string(action)).Str("dir", dir).Msg("Running terraform")
	done := logging.LogOperationStart(logger, "terraform."+string(action))
	defer done()

	if err := c.Runner.Run(ctx, runner.Command{Name: binary, Args: args, Dir: dir}); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "terraform %s failed", action).
			WithDetail("dir", dir)
	}
	return nil
}

var confirmations = map[Action]string{
	ActionApply:   PromptApply,
	ActionDestroy: PromptDestroy,
}

func (c *Client) confirm(prompt string) error {
	if c.Confirmer == nil {
		return errors.New(errors.ErrInvalidInput, "confirmation required but no prompt is available")
	}
	ok, err := c.Confirmer.Confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

// ResolveDir returns an absolute terraform directory, defaulting to the
// current working directory, and checks that it exists.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", dir)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrFileNotFound, "directory not found: %s", dir).WithDetail("dir", abs)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dir)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "not a directory: %s", dir)
	}
	return abs, nil
}
