// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 19

// Host Player - these keys locate and launch the mpv process acting as the playback host.
const (
	PlayerBinary             = "player.binary"
	PlayerSocketWaitAttempts = "player.socket_wait_attempts"
	PlayerSocketWaitDelay    = "player.socket_wait_delay"
)

// Skip Windows - these keys define the opening and ending intervals checked on every time update.
const (
	SkipOpeningStart   = "skip.opening_start"
	SkipOpeningEnd     = "skip.opening_end"
	SkipEndingStart    = "skip.ending_start"
	SkipEndingEnd      = "skip.ending_end"
	SkipEndingRelative = "skip.ending_relative"
	SkipDebounce       = "skip.debounce"
	SkipChapters       = "skip.chapters"
)

// Notifications - these keys tune the toast surfaces used after a skip.
const (
	NotifyOSDDuration = "notify.osd_duration"
	NotifyBanner      = "notify.banner"
)

// User Settings - the key-value slot the toggleable settings blob lives under.
const (
	SettingsStorageKey = "settings.storage_key"
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
