package config

// Built-in defaults applied when the user configuration leaves a field
// unset.
const (
	// DefaultRemote is the remote fetched for history.
	DefaultRemote = "origin"

	// DefaultFetchDepth bounds the initial fetch and sizes each deepen
	// increment.
	DefaultFetchDepth = 100
)
