// Package ui renders command results as styled terminal output, plain text or
// JSON.
package ui

import (
	"fmt"
	"io"

	"github.com/devopsctl/devops-cli/pkg/ui/json"
	"github.com/devopsctl/devops-cli/pkg/ui/terminal"
	"github.com/devopsctl/devops-cli/pkg/ui/text"
)

// Renderer writes results in one output format
type Renderer interface {
	// RenderResult renders a view.List, view.Settings or view.Message
	RenderResult(result interface{}) error

	RenderError(err error) error

	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format, detecting it when format is Auto
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
