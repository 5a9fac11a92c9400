package download

import (
	"context"

	"github.com/ytget/yt-playlist/internal/model"
)

// Fetcher is the download half of the extraction library
type Fetcher interface {
	Download(ctx context.Context, req model.DownloadRequest, onEvent func(model.TransferEvent)) error
}

// VideoBar is the handle of one per-video progress bar. A new bar is
// indeterminate until Update is called with a known total.
type VideoBar interface {
	// Update sets completed/total from an event whose TotalBytes is known
	Update(ev model.TransferEvent)
	// MarkComplete shows the bar as done when no total ever became known
	MarkComplete()
	// MarkFailed relabels the bar as errored; the bar stays visible
	MarkFailed(err error)
}

// ProgressDisplay is the two-level progress view driven by the orchestrator
type ProgressDisplay interface {
	// NewVideoBar adds an indeterminate bar labelled with title
	NewVideoBar(title string) VideoBar
	// Advance moves the overall counter forward by one video
	Advance()
	// RemoveVideoBar drops a finished bar from the view
	RemoveVideoBar(bar VideoBar)
}
