package ui_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/ui"
	"github.com/devopsctl/devops-cli/pkg/ui/view"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func templates() *view.List {
	return &view.List{
		Title: "Available templates",
		Items: []view.Item{
			{Name: "go", Detail: "Go"},
			{Name: "python", Detail: "Python"},
		},
		Empty: "No templates",
	}
}

func render(t *testing.T, format ui.Format, result interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewRenderer(format, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(result))
	return buf.String()
}

func TestTextList(t *testing.T) {
	out := render(t, ui.FormatText, templates())
	assert.Equal(t, "Available templates:\n  go      Go\n  python  Python\n", out)
}

func TestTextEmptyList(t *testing.T) {
	out := render(t, ui.FormatText, &view.List{Title: "Scripts", Empty: "No scripts found"})
	assert.Equal(t, "No scripts found\n", out)
}

func TestTextSettings(t *testing.T) {
	out := render(t, ui.FormatText, &view.Settings{
		Title: "Configuration",
		Settings: []view.Setting{
			{Key: "git-branch", Value: "main", Source: "default"},
			{Key: "git-remote", Value: "upstream", Source: "/home/u/.config/devops-cli/config.toml"},
		},
		Files: []string{"/home/u/.config/devops-cli/config.toml"},
	})

	assert.Contains(t, out, "Configuration:\n")
	assert.Contains(t, out, "  git-branch  main      (default)\n")
	assert.Contains(t, out, "Loaded from:\n  /home/u/.config/devops-cli/config.toml\n")
}

func TestAutoOnBufferIsText(t *testing.T) {
	assert.Equal(t, render(t, ui.FormatText, templates()), render(t, ui.FormatAuto, templates()))
}

func TestJSONList(t *testing.T) {
	out := render(t, ui.FormatJSON, templates())

	var decoded struct {
		Title string      `json:"title"`
		Items []view.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Available templates", decoded.Title)
	assert.Len(t, decoded.Items, 2)
	assert.NotContains(t, out, "No templates")
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(errors.New(errors.ErrTemplateNotFound, "no such template")))
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "TEMPLATE_NOT_FOUND", decoded["code"])

	buf.Reset()
	require.NoError(t, r.RenderError(fmt.Errorf("plain")))
	assert.NotContains(t, buf.String(), "code")
}

func TestTerminalList(t *testing.T) {
	out := render(t, ui.FormatTerminal, templates())
	assert.Contains(t, out, "Available templates\n")
	assert.Contains(t, out, "• go      Go\n")
	assert.Contains(t, out, "• python  Python\n")
}

func TestTerminalMessage(t *testing.T) {
	out := render(t, ui.FormatTerminal, &view.Message{Level: view.LevelSuccess, Text: "Pipeline created"})
	assert.Equal(t, "✓ Pipeline created\n", out)
}

func TestTerminalSettings(t *testing.T) {
	out := render(t, ui.FormatTerminal, &view.Settings{
		Settings: []view.Setting{{Key: "git-branch", Value: "main", Source: "default"}},
	})
	assert.Contains(t, out, "git-branch")
	assert.Contains(t, out, "main")
}

func TestUnknownFormat(t *testing.T) {
	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.Error(t, err)
}
