// Package topics adds topic-based help to a Cobra command tree. Topics are
// text or markdown files read from an fs.FS, usually an embedded directory,
// and are shown with `<app> help <topic>`.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// ListKeyword is the help argument that lists every topic
const ListKeyword = "topics"

// Topic is a single help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Ext returns the topic file extension, e.g. ".md"
func (t *Topic) Ext() string {
	return path.Ext(t.Path)
}

// Options configures the Manager
type Options struct {
	// Extensions considered as topics, defaults to .txt and .md
	Extensions []string
	// Renderer formats topic content, defaults to PlainRenderer
	Renderer Renderer
}

// Manager holds the topics loaded from a filesystem
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Load reads every topic file under root in fsys
func Load(fsys fs.FS, root string, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(data)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}
	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get looks up a topic. Flag-style names (--dry-run) also match option-dry-run.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names returns the sorted topic names
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the configured renderer
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, t.Ext())
}

// WriteList prints the topic index to w
func (m *Manager) WriteList(w io.Writer, appName string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, "--"+strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
}

// Install replaces the root command's help command with one that also knows
// about topics
func (m *Manager) Install(root *cobra.Command) {
	originalHelp := root.HelpFunc()
	appName := root.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + appName + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + appName + ` help ` + ListKeyword,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{ListKeyword}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				originalHelp(root, nil)
				return
			}
			if args[0] == ListKeyword {
				m.WriteList(out, appName)
				return
			}
			if t, ok := m.Get(args[0]); ok {
				fmt.Fprint(out, m.Render(t))
				return
			}

			target, _, err := root.Find(args)
			if err != nil || target == nil {
				originalHelp(root, args)
				return
			}
			originalHelp(target, nil)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
