package ir

// Version constants stamped on every persisted generation pass.
const (
	// IRVersion is the decision cell schema version.
	IRVersion = "1"

	// ResolverVersion is the floatlat resolver version.
	ResolverVersion = "0.1.0"
)
