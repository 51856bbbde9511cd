// Package terminal renders results with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/style"
	"github.com/devopsctl/devops-cli/pkg/ui/view"
	"github.com/pterm/pterm"
)

// Renderer writes styled output
type Renderer struct {
	output io.Writer
}

// New creates a terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders known views; anything else is printed with %v
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *view.List:
		return r.write(renderList(v))
	case *view.Settings:
		return r.write(renderSettings(v))
	case *view.Message:
		return r.write(renderMessage(v) + "\n")
	default:
		return r.write(fmt.Sprintf("%v\n", result))
	}
}

func renderList(l *view.List) string {
	if len(l.Items) == 0 {
		if l.Empty == "" {
			return ""
		}
		return style.MutedStyle.Render(l.Empty) + "\n"
	}

	width := 0
	for _, item := range l.Items {
		if len(item.Name) > width {
			width = len(item.Name)
		}
	}

	var b strings.Builder
	if l.Title != "" {
		b.WriteString(style.TitleStyle.Render(l.Title) + "\n")
	}
	for _, item := range l.Items {
		line := style.InfoIndicator + " " + style.Bold(item.Name)
		if item.Detail != "" {
			line += strings.Repeat(" ", width-len(item.Name)+2) + style.MutedStyle.Render(item.Detail)
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func renderSettings(s *view.Settings) string {
	data := pterm.TableData{{"Key", "Value", "Source"}}
	for _, setting := range s.Settings {
		data = append(data, []string{
			style.KeyStyle.Render(setting.Key),
			setting.Value,
			style.MutedStyle.Render(setting.Source),
		})
	}

	var b strings.Builder
	if s.Title != "" {
		b.WriteString(style.TitleStyle.Render(s.Title) + "\n")
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		for _, setting := range s.Settings {
			fmt.Fprintf(&b, "  %s = %s (%s)\n", setting.Key, setting.Value, setting.Source)
		}
	} else {
		b.WriteString(table + "\n")
	}
	if len(s.Files) > 0 {
		b.WriteString("\n" + style.MutedStyle.Render("Loaded from:") + "\n")
		for _, f := range s.Files {
			b.WriteString("  " + style.PathStyle.Render(f) + "\n")
		}
	}
	return b.String()
}

func renderMessage(m *view.Message) string {
	switch m.Level {
	case view.LevelSuccess:
		return style.SuccessIndicator + " " + m.Text
	case view.LevelWarning:
		return style.WarningIndicator + " " + style.WarningStyle.Render(m.Text)
	default:
		return style.InfoIndicator + " " + m.Text
	}
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}

// RenderError renders the error in the error style
func (r *Renderer) RenderError(err error) error {
	return r.write(style.ErrorLine(err) + "\n")
}

// RenderMessage renders an info line
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(renderMessage(&view.Message{Level: view.LevelInfo, Text: msg}) + "\n")
}
