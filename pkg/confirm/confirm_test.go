package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"  Y  \n", true},
		{"no\n", false},
		{"n\n", false},
		{"\n", false},
		{"yep\n", false},
		{"", false},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Are you sure you want to apply these changes?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Are you sure you want to apply these changes? (yes/no): ", out.String())
		})
	}
}

func TestAskUsesDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n/srv/infra\n"), &out)

	first, err := p.Ask("Enter workspace directory", "./workspace")
	require.NoError(t, err)
	second, err := p.Ask("Enter workspace directory", "./workspace")
	require.NoError(t, err)

	assert.Equal(t, "./workspace", first)
	assert.Equal(t, "/srv/infra", second)
	assert.Contains(t, out.String(), "(press Enter for default './workspace'): ")
}

func TestAskWithoutDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Add pipeline\n"), &out)

	got, err := p.Ask("Commit message", "")
	require.NoError(t, err)
	assert.Equal(t, "Add pipeline", got)
	assert.Equal(t, "Commit message: ", out.String())
}

func TestAlways(t *testing.T) {
	ok, err := Always{}.Confirm("anything")
	require.NoError(t, err)
	assert.True(t, ok)
}
