package runner

import (
	"context"
	"sync"
)

// Recorder is a Runner that records commands instead of executing them.
// Tests use it to assert on the exact command lines a component issues.
type Recorder struct {
	mu       sync.Mutex
	Commands []Command
	// Errors maps a command name (or full command line) to the error returned for it
	Errors map[string]error
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{Errors: make(map[string]error)}
}

// FailOn makes commands matching key return err
func (r *Recorder) FailOn(key string, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors[key] = err
	return r
}

// Run records cmd and returns the scripted error, if any
func (r *Recorder) Run(ctx context.Context, cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Commands = append(r.Commands, cmd)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := r.Errors[cmd.String()]; ok {
		return err
	}
	if err, ok := r.Errors[cmd.Name]; ok {
		return err
	}
	return nil
}

// Lines returns every recorded command line
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = c.String()
	}
	return lines
}
