package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/devopsctl/devops-cli/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/devopsctl/devops-cli/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/devopsctl/devops-cli/internal/version.Date={{.Date}}
)

// String formats the build information for `devops-cli version`
func String() string {
	return fmt.Sprintf("devops-cli version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
