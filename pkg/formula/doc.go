// Package formula models the Homebrew formula that distributes the devops-cli
// binary.
//
// The formula is kept on disk as TOML (formula.toml) and rendered to the Ruby
// DSL Homebrew consumes. Each supported operating system has its own artifact
// URL and SHA-256 checksum; Bump recomputes those checksums for a new release.
package formula
