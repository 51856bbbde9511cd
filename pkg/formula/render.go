package formula

import (
	"io"
	"strings"
	"text/template"

	"github.com/devopsctl/devops-cli/pkg/errors"
)

var osPredicate = map[string]string{
	Darwin: "OS.mac?",
	Linux:  "OS.linux?",
}

const rubyTemplate = `class {{ .Class }} < Formula
  desc {{ ruby .F.Desc }}
  homepage {{ ruby .F.Homepage }}
  version {{ ruby .F.Version }}
{{ range $i, $b := .Branches }}
  {{ if eq $i 0 }}if{{ else }}elsif{{ end }} {{ $b.Predicate }}
    url {{ ruby $b.URL }}
    sha256 {{ ruby $b.SHA256 }}
{{- end }}
  end

  def install
    bin.install {{ ruby .F.Binary }}
  end

  test do
    system "#{bin}/{{ rubyBody .F.Binary }}"{{ range .F.TestArgs }}, {{ ruby . }}{{ end }}
  end
end
`

var rubyTmpl = template.Must(template.New("formula").Funcs(template.FuncMap{
	"ruby":     rubyString,
	"rubyBody": rubyEscape,
}).Parse(rubyTemplate))

type branch struct {
	Predicate string
	URL       string
	SHA256    string
}

// Render writes the formula in Homebrew's Ruby DSL. The formula must be valid.
func (f *Formula) Render(w io.Writer) error {
	if err := f.Validate(); err != nil {
		return err
	}

	var branches []branch
	for _, goos := range f.OrderedPlatforms() {
		a := f.Platforms[goos]
		branches = append(branches, branch{
			Predicate: osPredicate[goos],
			URL:       a.URL,
			SHA256:    a.SHA256,
		})
	}

	data := struct {
		Class    string
		F        *Formula
		Branches []branch
	}{ClassName(f.Name), f, branches}

	if err := rubyTmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, errors.ErrTemplateRender, "failed to render formula")
	}
	return nil
}

func rubyString(s string) string {
	return `"` + rubyEscape(s) + `"`
}

func rubyEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, `#{`, `\#{`).Replace(s)
}
