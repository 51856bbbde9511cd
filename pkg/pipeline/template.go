// Package pipeline generates GitHub Actions CI/CD workflows from built-in
// templates and pushes them to the project's git remote.
package pipeline

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Setup describes the language toolchain step of a workflow
type Setup struct {
	Action     string `yaml:"action" json:"action"`
	VersionKey string `yaml:"version_key" json:"versionKey"`
	Version    string `yaml:"version" json:"version"`
}

// Template represents a CI/CD pipeline template
type Template struct {
	Key         string   `yaml:"-" json:"key"`
	Name        string   `yaml:"name" json:"name"`
	Language    string   `yaml:"language" json:"language"`
	Setup       Setup    `yaml:"setup" json:"setup"`
	BuildSteps  []string `yaml:"build" json:"build"`
	TestSteps   []string `yaml:"test" json:"test"`
	DeploySteps []string `yaml:"deploy" json:"deploy"`
}

//go:embed templates.yaml
var embeddedTemplates []byte

var builtin map[string]Template

func init() {
	var err error
	builtin, err = parseCatalog(embeddedTemplates)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded pipeline templates: %v", err))
	}
}

func parseCatalog(data []byte) (map[string]Template, error) {
	raw := make(map[string]Template)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key, t := range raw {
		if t.Name == "" || t.Setup.Action == "" {
			return nil, fmt.Errorf("template %q needs name and setup.action", key)
		}
		t.Key = key
		raw[key] = t
	}
	return raw, nil
}

// Templates returns every built-in template sorted by key
func Templates() []Template {
	out := make([]Template, 0, len(builtin))
	for _, t := range builtin {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Names returns the sorted template keys
func Names() []string {
	var names []string
	for _, t := range Templates() {
		names = append(names, t.Key)
	}
	return names
}

// Lookup returns the template registered under name
func Lookup(name string) (Template, error) {
	t, ok := builtin[name]
	if !ok {
		return Template{}, errors.Newf(errors.ErrTemplateNotFound, "template '%s' not found", name).
			WithDetail("available", Names())
	}
	return t, nil
}
