// Package config provides configuration for commit range resolution.
// Values come from an optional YAML file merged over built-in defaults.
package config

// Config is the raw user configuration as parsed from YAML. Nil fields
// mean "not set" and fall back to defaults when building the effective
// configuration.
type Config struct {
	// Remote is the name of the remote fetched for history.
	Remote *string `yaml:"remote"`

	// FetchDepth is the bounded fetch depth and the per-attempt deepening
	// increment.
	FetchDepth *int `yaml:"fetch-depth"`

	// DefaultBranch overrides the event-supplied default branch name.
	DefaultBranch *string `yaml:"default-branch"`
}

// Effective is the fully resolved configuration with every field set.
type Effective struct {
	Remote        string
	FetchDepth    int
	DefaultBranch string
}
