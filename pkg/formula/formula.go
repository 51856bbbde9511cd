package formula

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/google/renameio/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// Supported operating systems, in the order Homebrew branches are rendered
const (
	Darwin = "darwin"
	Linux  = "linux"
)

// DefaultArch is used when an artifact does not name one
const DefaultArch = "amd64"

var supportedOS = []string{Darwin, Linux}

var sha256Pattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Artifact is a prebuilt release archive for one operating system
type Artifact struct {
	URL    string `toml:"url"`
	SHA256 string `toml:"sha256"`
	Arch   string `toml:"arch,omitempty"`
}

// Formula describes how the package manager fetches, verifies and installs
// the binary
type Formula struct {
	Name        string              `toml:"name"`
	Desc        string              `toml:"desc"`
	Homepage    string              `toml:"homepage"`
	Version     string              `toml:"version"`
	Binary      string              `toml:"binary"`
	TestArgs    []string            `toml:"test_args,omitempty"`
	URLTemplate string              `toml:"url_template,omitempty"`
	Platforms   map[string]Artifact `toml:"platforms"`
}

// SupportedOS returns the operating systems a formula can target
func SupportedOS() []string {
	return append([]string(nil), supportedOS...)
}

// Load reads and parses a formula file
func Load(path string) (*Formula, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileNotFound, "formula file not found: %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read formula %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFormulaInvalid, "failed to parse formula %s", path)
	}
	return f, nil
}

// Parse decodes TOML formula data and fills defaults
func Parse(data []byte) (*Formula, error) {
	var f Formula
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	f.applyDefaults()
	return &f, nil
}

func (f *Formula) applyDefaults() {
	if f.Binary == "" {
		f.Binary = f.Name
	}
	if len(f.TestArgs) == 0 {
		f.TestArgs = []string{"--version"}
	}
	for goos, a := range f.Platforms {
		if a.Arch == "" {
			a.Arch = DefaultArch
			f.Platforms[goos] = a
		}
	}
}

// Problems lists everything wrong with the formula. It is empty for a valid
// formula.
func (f *Formula) Problems() []string {
	var problems []string
	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(f.Version) == "" {
		problems = append(problems, "version is required")
	}
	if strings.TrimSpace(f.Homepage) == "" {
		problems = append(problems, "homepage is required")
	}
	if strings.TrimSpace(f.Binary) == "" {
		problems = append(problems, "binary is required")
	} else if strings.ContainsAny(f.Binary, `/\`) {
		problems = append(problems, "binary must be a file name, not a path")
	}
	if len(f.TestArgs) == 0 {
		problems = append(problems, "test_args must not be empty")
	}
	if len(f.Platforms) == 0 {
		problems = append(problems, "at least one platform is required")
	}

	for _, goos := range sortedKeys(f.Platforms) {
		a := f.Platforms[goos]
		if !isSupported(goos) {
			problems = append(problems, "platform "+goos+" is not supported (use "+strings.Join(supportedOS, ", ")+")")
			continue
		}
		if strings.TrimSpace(a.URL) == "" {
			problems = append(problems, "platform "+goos+": url is required")
		}
		if !sha256Pattern.MatchString(a.SHA256) {
			problems = append(problems, "platform "+goos+": sha256 must be 64 lowercase hex characters")
		}
	}
	return problems
}

// Validate returns a FORMULA_INVALID error carrying every problem found
func (f *Formula) Validate() error {
	problems := f.Problems()
	if len(problems) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrFormulaInvalid, "invalid formula: %s", strings.Join(problems, "; ")).
		WithDetail("problems", problems)
}

// Platform returns the artifact for goos
func (f *Formula) Platform(goos string) (Artifact, error) {
	a, ok := f.Platforms[goos]
	if !ok {
		return Artifact{}, errors.Newf(errors.ErrPlatformUnsupported, "formula %s has no artifact for %s", f.Name, goos).
			WithDetail("os", goos).
			WithDetail("available", sortedKeys(f.Platforms))
	}
	return a, nil
}

// OrderedPlatforms returns the configured operating systems with the
// supported ones first, in rendering order
func (f *Formula) OrderedPlatforms() []string {
	var out []string
	for _, goos := range supportedOS {
		if _, ok := f.Platforms[goos]; ok {
			out = append(out, goos)
		}
	}
	for _, goos := range sortedKeys(f.Platforms) {
		if !isSupported(goos) {
			out = append(out, goos)
		}
	}
	return out
}

// ExpandURL fills the url template for goos and arch
func (f *Formula) ExpandURL(goos, arch string) string {
	if arch == "" {
		arch = DefaultArch
	}
	return strings.NewReplacer(
		"{version}", f.Version,
		"{os}", goos,
		"{arch}", arch,
		"{name}", f.Name,
	).Replace(f.URLTemplate)
}

// Marshal encodes the formula as TOML
func (f *Formula) Marshal() ([]byte, error) {
	return toml.Marshal(f)
}

// Save writes the formula to path atomically
func (f *Formula) Save(path string) error {
	data, err := f.Marshal()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode formula")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write formula %s", path)
	}
	return nil
}

// ClassName converts a formula name to the Ruby class Homebrew expects,
// e.g. devops-cli -> DevopsCli
func ClassName(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	var b strings.Builder
	upper := true
	for _, r := range lower {
		switch {
		case r == '-' || r == '_' || r == '.' || r == ' ':
			upper = true
		case r == '+':
			b.WriteRune('x')
			upper = false
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSupported(goos string) bool {
	for _, s := range supportedOS {
		if s == goos {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]Artifact) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
