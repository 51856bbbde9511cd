// Package json renders results as indented JSON for scripts
package json

import (
	"encoding/json"
	"io"

	"github.com/devopsctl/devops-cli/pkg/errors"
)

// Renderer writes one JSON document per call
type Renderer struct {
	encoder *json.Encoder
}

// New creates a JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult encodes result as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError encodes the error message, plus its code when it has one
func (r *Renderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": err.Error(),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		obj["code"] = code
	}
	return r.encoder.Encode(obj)
}

// RenderMessage encodes {"message": msg}
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{
		"message": msg,
	})
}
