package download

import (
	"github.com/ytget/yt-playlist/internal/model"
)

// ProgressReporter adapts transfer events of one video to its progress bar
type ProgressReporter struct {
	bar       VideoBar
	lastTotal int64
	events    int
}

// NewProgressReporter binds a reporter to bar
func NewProgressReporter(bar VideoBar) *ProgressReporter {
	return &ProgressReporter{bar: bar}
}

// Handle processes one transfer event. Only downloading and finished are
// acted on; every other status is ignored.
func (r *ProgressReporter) Handle(ev model.TransferEvent) {
	r.events++

	switch ev.Status {
	case model.TransferDownloading:
		if !ev.HasTotal() {
			return
		}
		r.lastTotal = ev.TotalBytes
		r.bar.Update(ev)

	case model.TransferFinished:
		total := ev.TotalBytes
		if total <= 0 {
			total = r.lastTotal
		}
		if total <= 0 {
			r.bar.MarkComplete()
			return
		}
		r.lastTotal = total
		r.bar.Update(model.TransferEvent{
			Status:          model.TransferFinished,
			DownloadedBytes: total,
			TotalBytes:      total,
			Speed:           ev.Speed,
		})
	}
}

// Events returns how many events were received
func (r *ProgressReporter) Events() int {
	return r.events
}
