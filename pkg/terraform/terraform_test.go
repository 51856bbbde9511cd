package terraform

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (s *scriptedConfirmer) Confirm(q string) (bool, error) {
	s.prompts = append(s.prompts, q)
	return s.answer, s.err
}

func TestRunCommands(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		action Action
		want   []string
		prompt string
	}{
		{"init", ActionInit, []string{"init"}, ""},
		{"plan", ActionPlan, []string{"plan"}, ""},
		{"apply", ActionApply, []string{"apply", "-auto-approve"}, PromptApply},
		{"destroy", ActionDestroy, []string{"destroy", "-auto-approve"}, PromptDestroy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runner.NewRecorder()
			conf := &scriptedConfirmer{answer: true}
			c := &Client{Binary: "/usr/bin/terraform", Runner: rec, Confirmer: conf}

			require.NoError(t, c.Run(context.Background(), tt.action, Options{Dir: dir}))

			require.Len(t, rec.Commands, 1)
			assert.Equal(t, "/usr/bin/terraform", rec.Commands[0].Name)
			assert.Equal(t, tt.want, rec.Commands[0].Args)
			assert.Equal(t, dir, rec.Commands[0].Dir)

			if tt.prompt == "" {
				assert.Empty(t, conf.prompts)
			} else {
				assert.Equal(t, []string{tt.prompt}, conf.prompts)
			}
		})
	}
}

func TestApplyDeclinedRunsNothing(t *testing.T) {
	rec := runner.NewRecorder()
	c := &Client{Runner: rec, Confirmer: &scriptedConfirmer{answer: false}}

	err := c.Apply(context.Background(), Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
	assert.Empty(t, rec.Commands)
}

func TestDestroyWithoutConfirmer(t *testing.T) {
	rec := runner.NewRecorder()
	c := &Client{Runner: rec}

	err := c.Destroy(context.Background(), Options{Dir: t.TempDir()})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, rec.Commands)
}

func TestExtraArgsAndDefaultBinary(t *testing.T) {
	rec := runner.NewRecorder()
	c := &Client{Runner: rec}

	err := c.Plan(context.Background(), Options{Dir: t.TempDir(), ExtraArgs: []string{"-var-file=prod.tfvars"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"terraform plan -var-file=prod.tfvars"}, rec.Lines())
}

func TestRunnerFailureIsWrapped(t *testing.T) {
	rec := runner.NewRecorder().FailOn("terraform", stderrors.New("exit status 1"))
	c := &Client{Runner: rec}

	err := c.Init(context.Background(), Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Contains(t, err.Error(), "terraform init failed")
}

func TestResolveDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.tf")
	require.NoError(t, os.WriteFile(file, []byte("# empty"), 0644))

	got, err := ResolveDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = ResolveDir(filepath.Join(dir, "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	_, err = ResolveDir(file)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	wd, err := os.Getwd()
	require.NoError(t, err)
	got, err = ResolveDir("")
	require.NoError(t, err)
	assert.Equal(t, wd, got)
}
