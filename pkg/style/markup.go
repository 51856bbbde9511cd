package style

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser with the default tag set
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}
	defaults := map[string]lipgloss.Style{
		"title":   TitleStyle,
		"success": SuccessStyle,
		"error":   ErrorStyle,
		"warning": WarningStyle,
		"info":    InfoStyle,
		"code":    CodeStyle,
		"path":    PathStyle,
		"muted":   MutedStyle,
		"key":     KeyStyle,
		"bold":    lipgloss.NewStyle().Bold(true),
		"italic":  lipgloss.NewStyle().Italic(true),

		"terraform": TerraformStyle,
		"pipeline":  PipelineStyle,
		"script":    ScriptStyle,
		"formula":   FormulaStyle,
	}
	for tag, st := range defaults {
		p.AddStyle(tag, st)
	}
	return p
}

// Render replaces known tags with styled text until none remain. Unknown
// tags are left as written.
func (p *MarkupParser) Render(text string) string {
	tags := make([]string, 0, len(p.styles))
	for tag := range p.styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for {
		before := text
		for _, tag := range tags {
			pattern, st := p.patterns[tag], p.styles[tag]
			text = pattern.ReplaceAllStringFunc(text, func(match string) string {
				return st.Render(pattern.FindStringSubmatch(match)[1])
			})
		}
		if text == before {
			return text
		}
	}
}

// AddStyle registers a custom tag
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	quoted := regexp.QuoteMeta(tag)
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`(?s)\[` + quoted + `\](.*?)\[/` + quoted + `\]`)
}

// RenderTemplate substitutes {{name}} placeholders and then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return p.Render(strings.NewReplacer(pairs...).Replace(template))
}

var defaultParser = NewMarkupParser()

// Render uses the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// RenderTemplate uses the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
