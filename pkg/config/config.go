package config

import (
	"time"
)

// Config is the effective CLI configuration
type Config struct {
	Terraform TerraformConfig `koanf:"terraform"`
	Workspace WorkspaceConfig `koanf:"workspace"`
	Git       GitConfig       `koanf:"git"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Commands  CommandsConfig  `koanf:"commands"`
	Formula   FormulaConfig   `koanf:"formula"`
}

type TerraformConfig struct {
	Path string `koanf:"path"`
}

type WorkspaceConfig struct {
	Dir string `koanf:"dir"`
}

type GitConfig struct {
	Remote string `koanf:"remote"`
	Branch string `koanf:"branch"`
}

type PipelineConfig struct {
	Dir string `koanf:"dir"`
}

type CommandsConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

type FormulaConfig struct {
	File string `koanf:"file"`
}

// Source names reported by Loaded.Sources
const (
	SourceDefault   = "default"
	SourceUser      = "user"
	SourceWorkspace = "workspace"
	SourceEnv       = "env"
)

// Loaded is a Config together with where each value came from
type Loaded struct {
	Config
	// Sources maps an internal key (e.g. "git.branch") to the layer that set it
	Sources map[string]string
	// Files lists the config files that were found and loaded, in order
	Files []string
}

// Source returns the layer that provided key, or SourceDefault
func (l *Loaded) Source(key string) string {
	if s, ok := l.Sources[key]; ok {
		return s
	}
	return SourceDefault
}
