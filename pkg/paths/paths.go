package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/devopsctl/devops-cli/pkg/errors"
)

// Environment variable names
const (
	EnvConfigDir = "DEVOPS_CLI_CONFIG_DIR"
	EnvCacheDir  = "DEVOPS_CLI_CACHE_DIR"
	EnvBinDir    = "DEVOPS_CLI_BIN_DIR"
	EnvHome      = "HOME"
)

// Fixed names inside the CLI's own directories
const (
	AppDirName = "devops-cli"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// WorkspaceConfigFile is the per-project override file in the project root
	WorkspaceConfigFile = ".devops-cli.toml"

	// DefaultPipelineDir is where GitHub Actions workflows live, relative to the project root
	DefaultPipelineDir = ".github/workflows"

	// DownloadsDir is the cache subdirectory for release artifacts
	DownloadsDir = "downloads"

	LogFileName = "devops-cli.log"
)

// Paths provides centralized path management for devops-cli
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	ConfigDir() string
	ConfigFile() string
	WorkspaceConfigPath() string
	CacheDir() string
	DownloadsDir() string
	StateDir() string
	LogFilePath() string
	BinDir() string
	PipelineDir(configured string) string
	Resolve(path string) string
}

type paths struct {
	projectRoot  string
	usedFallback bool

	configDir string
	cacheDir  string
	stateDir  string
	binDir    string
}

// New creates a new Paths instance rooted at projectRoot.
// If projectRoot is empty, the git repository root is used, falling back
// to the current working directory.
func New(projectRoot string) (Paths, error) {
	p := &paths{}

	if projectRoot == "" {
		root, usedFallback, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = ExpandHome(projectRoot)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = ExpandHome(dir)
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	// xdg.StateHome is read once at package init, so check the env var first
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		p.stateDir = filepath.Join(dir, AppDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	if dir := os.Getenv(EnvBinDir); dir != "" {
		p.binDir = ExpandHome(dir)
	} else {
		p.binDir = xdg.BinHome
	}
}

// findProjectRoot prefers the enclosing git repository and falls back to cwd
func findProjectRoot() (string, bool, error) {
	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

func (p *paths) ProjectRoot() string { return p.projectRoot }

// UsedFallback reports whether the current directory was used because no git root was found
func (p *paths) UsedFallback() bool { return p.usedFallback }

func (p *paths) ConfigDir() string { return p.configDir }

func (p *paths) ConfigFile() string { return filepath.Join(p.configDir, ConfigFileName) }

func (p *paths) WorkspaceConfigPath() string {
	return filepath.Join(p.projectRoot, WorkspaceConfigFile)
}

func (p *paths) CacheDir() string { return p.cacheDir }

func (p *paths) DownloadsDir() string { return filepath.Join(p.cacheDir, DownloadsDir) }

func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

func (p *paths) BinDir() string { return p.binDir }

// PipelineDir returns the workflow directory. A relative configured value is
// taken relative to the project root; empty means DefaultPipelineDir.
func (p *paths) PipelineDir(configured string) string {
	if configured == "" {
		configured = DefaultPipelineDir
	}
	return p.Resolve(configured)
}

// Resolve expands ~ and makes relative paths absolute against the project root
func (p *paths) Resolve(path string) string {
	path = ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.projectRoot, path)
}
