// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Gemini retrieval - these keys configure the generative-AI collaborator.
const (
	GeminiAPIKey  = "gemini.api_key"
	GeminiModel   = "gemini.model"
	GeminiSearch  = "gemini.search"
	GeminiBaseURL = "gemini.base_url"
)

// Link intake.
const (
	IntakeHosts = "intake.hosts"
)

// Export - these keys control downloaded transcription files.
const (
	ExportFormat = "export.format"
	ExportDir    = "export.dir"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling and behaviour.
const (
	TUIItemSpacing  = "tui.item_spacing"
	TUIPreviewLines = "tui.preview_lines"
	TUIShowURLs     = "tui.show_urls"
	TUIConfirmClear = "tui.confirm_clear"
)

// Serve mode.
const (
	ServeAddr = "serve.addr"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
