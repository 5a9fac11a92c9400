package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons
const (
	IconSuccess = "✔"
	IconError   = "✘"
	IconPending = "…"
)

// Text fragments
const (
	AppTitle            = "YouTube Playlist Downloader"
	FetchingText        = "Fetching playlist information..."
	ResolveFailedText   = "Failed to retrieve playlist information. Please check the URL."
	InterruptedText     = "Interrupted, remaining videos were skipped."
	PlaylistLabel       = "Playlist"
	TotalVideosLabel    = "Total Videos"
	OutputDirLabel      = "Output Directory"
	TableTitle          = "Videos in Playlist"
	TableHeaderIndex    = "Index"
	TableHeaderTitle    = "Title"
	TotalProgressLabel  = "Total Progress"
	DownloadingPrefix   = "Downloading: "
	ErrorPrefix         = "Error: "
	CompletedText       = "All downloads completed!"
	VideosCounterFormat = "(%d/%d videos)"
	PercentFormat       = "%3.0f%%"
	UnknownSizeText     = "?"
	MiddleDotSeparator  = " · "
)

// Layout sizing
const (
	DefaultTerminalWidth = 80
	MinBarWidth          = 10
	MaxBarWidth          = 40
	LabelWidth           = 64
)

// Spinner animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Delays
const (
	SpinnerInterval = 80 * time.Millisecond
	PlainThrottle   = 100 * time.Millisecond
)
