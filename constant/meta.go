// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Autoskip is the canonical application identifier used for filesystem paths and CLI branding.
	Autoskip = "autoskip"

	// Version is the current application semantic version string.
	Version = "1.0.2"

	// PluginName is the human readable name shown in the settings form and version output.
	PluginName = "AniLibria AutoSkip"

	// PluginID is the identifier the settings blob has always been persisted under.
	PluginID = "anilibria_autoskip"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
