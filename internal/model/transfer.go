package model

import (
	"fmt"
	"time"
)

// TransferEvent is a single progress tick reported by the extraction library
// while a video is downloading. TotalBytes is 0 when the size is unknown.
// Speed (bytes per second) and ETA are zero when the library does not know.
type TransferEvent struct {
	Status          TransferStatus
	DownloadedBytes int64
	TotalBytes      int64
	Speed           float64
	ETA             time.Duration
}

// HasTotal reports whether the event carries a known total size
func (e TransferEvent) HasTotal() bool {
	return e.TotalBytes > 0
}

// Fraction returns downloaded/total clamped to [0, 1], or 0 when unknown
func (e TransferEvent) Fraction() float64 {
	if !e.HasTotal() {
		return 0
	}
	f := float64(e.DownloadedBytes) / float64(e.TotalBytes)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// DownloadRequest describes one call to the extraction library's download
// operation. OutputTemplate uses yt-dlp template fields (%(title)s, %(ext)s).
// Title is the untruncated entry title, used by engines that expand the
// template themselves.
type DownloadRequest struct {
	URL            string
	VideoID        string
	Title          string
	Format         string
	OutputTemplate string
}

// FormatETA returns ETA formatted as hh:mm:ss or mm:ss, or "-:--:--" if unknown
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "-:--:--"
	}

	total := int(eta.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
