// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Downify is the canonical application identifier used for filesystem paths and CLI branding.
	Downify = "downify"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is the HTTP User-Agent sent to the extraction service.
	UserAgent = Downify + "/" + Version
)

// Build metadata, injected with -ldflags "-X github.com/downify/downify/constant.Revision=...".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
