// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Tubescribe is the canonical application identifier used for filesystem paths and CLI branding.
	Tubescribe = "tubescribe"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-3-pro-preview"

	// Repository is the project home page.
	Repository = "https://github.com/tubescribe/tubescribe"

	// ReleasesAPI returns the latest published release.
	ReleasesAPI = "https://api.github.com/repos/tubescribe/tubescribe/releases/latest"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
