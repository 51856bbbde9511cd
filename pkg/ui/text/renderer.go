// Package text renders results as plain text without styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/devopsctl/devops-cli/pkg/ui/view"
)

// Renderer writes plain text
type Renderer struct {
	output io.Writer
}

// New creates a text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders known views; anything else is printed with %v
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *view.List:
		return r.renderList(v)
	case *view.Settings:
		return r.renderSettings(v)
	case *view.Message:
		return r.RenderMessage(v.Text)
	default:
		_, err := fmt.Fprintf(r.output, "%v\n", result)
		return err
	}
}

func (r *Renderer) renderList(l *view.List) error {
	if len(l.Items) == 0 {
		if l.Empty == "" {
			return nil
		}
		return r.RenderMessage(l.Empty)
	}

	var b strings.Builder
	if l.Title != "" {
		b.WriteString(l.Title + ":\n")
	}
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, item := range l.Items {
		if item.Detail == "" {
			fmt.Fprintf(tw, "  %s\n", item.Name)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\n", item.Name, item.Detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderSettings(s *view.Settings) error {
	var b strings.Builder
	if s.Title != "" {
		b.WriteString(s.Title + ":\n")
	}
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, setting := range s.Settings {
		fmt.Fprintf(tw, "  %s\t%s\t(%s)\n", setting.Key, setting.Value, setting.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(s.Files) > 0 {
		b.WriteString("\nLoaded from:\n")
		for _, f := range s.Files {
			b.WriteString("  " + f + "\n")
		}
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError writes "Error: <err>"
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage writes msg on its own line
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
