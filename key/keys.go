// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 21

// Extraction Service - these keys locate the remote extraction/download service.
const (
	ServiceURL = "service.url"
)

// Metadata Lookup - these keys govern the debounced media descriptor fetch.
const (
	FetchDebounceMs           = "fetch.debounce_ms"
	FetchPlaylistDefaultRange = "fetch.playlist_default_range"
)

// Download Jobs - these keys configure job submission, polling and file delivery.
const (
	DownloadKind            = "download.kind"
	DownloadVideoQuality    = "download.video_quality"
	DownloadAudioQuality    = "download.audio_quality"
	DownloadPollIntervalMs  = "download.poll_interval_ms"
	DownloadStaggerMs       = "download.stagger_ms"
	DownloadMaxPollFailures = "download.max_poll_failures"
	DownloadProgressFloor   = "download.progress_floor"
	DownloadDir             = "download.dir"
)

// Notifications - these keys control transient user feedback.
const (
	NotifySuccessLifetimeMs = "notify.success_lifetime_ms"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIDefaultContext = "tui.default_context"
	TUIItemSpacing    = "tui.item_spacing"
	TUIOpenOnSave     = "tui.open_on_save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
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
