package pipeline

import (
	"bytes"
	"io"
	"strings"
	"text/template"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"gopkg.in/yaml.v3"
)

const githubActionsTemplate = `name: {{.Template.Name}} CI/CD

on:
  push:
    branches: [ {{join .PushBranches ", "}} ]
  pull_request:
    branches: [ {{.Branch}} ]

jobs:
  build-and-test:
    runs-on: ubuntu-latest

    steps:
    - uses: actions/checkout@v3

    - name: Setup {{.Template.Language}}
      uses: {{.Template.Setup.Action}}
      with:
        {{.Template.Setup.VersionKey}}: '{{.Template.Setup.Version}}'
{{- if .Template.BuildSteps}}

    - name: Build
      run: |
{{- range .Template.BuildSteps}}
        {{.}}
{{- end}}
{{- end}}
{{- if .Template.TestSteps}}

    - name: Test
      run: |
{{- range .Template.TestSteps}}
        {{.}}
{{- end}}
{{- end}}
{{- if .Template.DeploySteps}}

    - name: Deploy
      if: github.ref == 'refs/heads/{{.Branch}}'
      run: |
{{- range .Template.DeploySteps}}
        {{.}}
{{- end}}
{{- end}}
`

var workflow = template.Must(template.New("pipeline").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(githubActionsTemplate))

// RenderOptions customizes the generated workflow
type RenderOptions struct {
	// Branch is the deployment branch, "main" when empty
	Branch string
}

type renderData struct {
	Template     Template
	Branch       string
	PushBranches []string
}

// Render writes the GitHub Actions workflow for t to w. The output is
// checked to be well-formed YAML before anything is written.
func Render(w io.Writer, t Template, opts RenderOptions) error {
	branch := opts.Branch
	if branch == "" {
		branch = "main"
	}

	push := []string{branch}
	if branch != "develop" {
		push = append(push, "develop")
	}

	var buf bytes.Buffer
	if err := workflow.Execute(&buf, renderData{Template: t, Branch: branch, PushBranches: push}); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateRender, "failed to render template %s", t.Key)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateRender, "template %s produced invalid YAML", t.Key)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write pipeline")
	}
	return nil
}
