package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/devopsctl/devops-cli/pkg/errors"
)

// Key describes a user-settable configuration key
type Key struct {
	// Name is the kebab-case name used on the command line
	Name string
	// Path is the dotted koanf path
	Path string
	// Description shows up in `config show` and help
	Description string

	validate func(string) error
}

var keys = []Key{
	{Name: "terraform-path", Path: "terraform.path", Description: "Terraform binary", validate: nonEmpty},
	{Name: "workspace-dir", Path: "workspace.dir", Description: "Workspace directory", validate: nonEmpty},
	{Name: "git-remote", Path: "git.remote", Description: "Git remote for pipeline push", validate: nonEmpty},
	{Name: "git-branch", Path: "git.branch", Description: "Git branch for pipeline push", validate: nonEmpty},
	{Name: "pipeline-dir", Path: "pipeline.dir", Description: "Workflow output directory", validate: nonEmpty},
	{Name: "command-timeout", Path: "commands.timeout", Description: "Timeout for external commands", validate: duration},
	{Name: "formula-file", Path: "formula.file", Description: "Formula definition file", validate: nonEmpty},
}

// Keys returns every settable key sorted by name
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// KeyNames returns the sorted list of settable key names
func KeyNames() []string {
	var names []string
	for _, k := range Keys() {
		names = append(names, k.Name)
	}
	return names
}

// LookupKey finds a key by its kebab-case name or dotted path
func LookupKey(name string) (Key, error) {
	for _, k := range keys {
		if k.Name == name || k.Path == name {
			return k, nil
		}
	}
	return Key{}, errors.Newf(errors.ErrConfigValid, "unknown configuration key: %s", name).
		WithDetail("valid", strings.Join(KeyNames(), ", "))
}

// Validate checks value against the key's rules
func (k Key) Validate(value string) error {
	if k.validate == nil {
		return nil
	}
	if err := k.validate(value); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid value for %s", k.Name)
	}
	return nil
}

// Value returns the key's current value from cfg formatted for display
func (k Key) Value(cfg *Config) string {
	switch k.Path {
	case "terraform.path":
		return cfg.Terraform.Path
	case "workspace.dir":
		return cfg.Workspace.Dir
	case "git.remote":
		return cfg.Git.Remote
	case "git.branch":
		return cfg.Git.Branch
	case "pipeline.dir":
		return cfg.Pipeline.Dir
	case "commands.timeout":
		return cfg.Commands.Timeout.String()
	case "formula.file":
		return cfg.Formula.File
	}
	return ""
}

func nonEmpty(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("value must not be empty")
	}
	return nil
}

func duration(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}
