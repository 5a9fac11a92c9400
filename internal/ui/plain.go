package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/ytget/yt-playlist/internal/download"
	"github.com/ytget/yt-playlist/internal/model"
)

// plainDisplay prints one line per state change and keeps a single byte
// progress bar for the running video on errOut
type plainDisplay struct {
	out    io.Writer
	errOut io.Writer
	total  int
	done   int
}

func newPlainDisplay(out, errOut io.Writer, total int) *plainDisplay {
	return &plainDisplay{out: out, errOut: errOut, total: total}
}

// NewVideoBar announces the video and starts an indeterminate byte bar
func (d *plainDisplay) NewVideoBar(title string) download.VideoBar {
	fmt.Fprintf(d.out, "[%d/%d] %s%s\n", d.done+1, d.total, DownloadingPrefix, title)
	return &plainBar{
		display: d,
		title:   title,
		bar: progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(d.errOut),
			progressbar.OptionSetDescription(title),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(PlainThrottle),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetElapsedTime(false),
			progressbar.OptionSetPredictTime(true),
		),
	}
}

// Advance moves the overall counter forward by one video
func (d *plainDisplay) Advance() {
	d.done++
}

// RemoveVideoBar clears the finished bar and prints a completion line
func (d *plainDisplay) RemoveVideoBar(bar download.VideoBar) {
	pb, ok := bar.(*plainBar)
	if !ok {
		return
	}
	pb.close()
	fmt.Fprintf(d.out, "%s %s %s\n", IconSuccess, pb.title, fmt.Sprintf(VideosCounterFormat, d.done, d.total))
}

// plainBar is one video's progressbar
type plainBar struct {
	display *plainDisplay
	title   string
	bar     *progressbar.ProgressBar
	max     int64
	closed  bool
}

func (b *plainBar) Update(ev model.TransferEvent) {
	if b.closed || !ev.HasTotal() {
		return
	}
	if ev.TotalBytes != b.max {
		b.max = ev.TotalBytes
		b.bar.ChangeMax64(b.max)
	}
	_ = b.bar.Set64(ev.DownloadedBytes)
}

func (b *plainBar) MarkComplete() {
	if b.closed {
		return
	}
	_ = b.bar.Finish()
}

func (b *plainBar) MarkFailed(err error) {
	b.close()
	msg := ErrorPrefix + b.title
	if err != nil {
		msg += MiddleDotSeparator + err.Error()
	}
	fmt.Fprintln(b.display.out, ErrorStyle.Render(msg))
}

func (b *plainBar) close() {
	if b.closed {
		return
	}
	b.closed = true
	_ = b.bar.Clear()
	_ = b.bar.Exit()
}

// runPlain drives fn with line output and prints the overall count at the end
func (c *Console) runPlain(total int, fn func(download.ProgressDisplay)) error {
	display := newPlainDisplay(c.out, c.errOut, total)
	fn(display)
	fmt.Fprintf(c.out, "%s %s\n", TotalProgressLabel, fmt.Sprintf(VideosCounterFormat, display.done, total))
	return nil
}

// Progress runs fn with a two-level progress display for total videos. The
// display is torn down before Progress returns.
func (c *Console) Progress(total int, fn func(download.ProgressDisplay)) error {
	if c.live {
		return c.runLive(total, fn)
	}
	return c.runPlain(total, fn)
}
