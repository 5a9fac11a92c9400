package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/ytget/yt-playlist/internal/config"
	"github.com/ytget/yt-playlist/internal/model"
)

// clearLine erases the current terminal line
const clearLine = "\r\033[2K"

// Console writes everything the user sees. Regular output goes to out;
// the plain-mode progress bar goes to errOut.
type Console struct {
	out         io.Writer
	errOut      io.Writer
	live        bool
	refreshRate int
	width       int
}

// NewConsole creates a console. UIModeAuto picks the live view only when out
// is a terminal.
func NewConsole(out, errOut io.Writer, mode config.UIMode, refreshRate int) *Console {
	if refreshRate < config.MinRefreshRate {
		refreshRate = config.DefaultRefreshRate
	}
	c := &Console{
		out:         out,
		errOut:      errOut,
		refreshRate: refreshRate,
		width:       DefaultTerminalWidth,
	}

	fd, isTTY := terminalFd(out)
	switch mode {
	case config.UIModeLive:
		c.live = true
	case config.UIModePlain:
		c.live = false
	default:
		c.live = isTTY
	}
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			c.width = w
		}
	}
	return c
}

// terminalFd returns the file descriptor of w and whether it is a terminal
func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// IsLive reports whether progress is rendered with the live view
func (c *Console) IsLive() bool {
	return c.live
}

// Width returns the detected terminal width
func (c *Console) Width() int {
	return c.width
}

// Banner prints the application banner panel
func (c *Console) Banner() {
	fmt.Fprintln(c.out, BannerStyle.Render(AppTitle))
}

// PlaylistInfo prints the playlist title, video count and absolute output directory
func (c *Console) PlaylistInfo(playlist *model.Playlist, outputDir string) {
	fmt.Fprintln(c.out)
	rows := [][2]string{
		{PlaylistLabel, playlist.DisplayTitle()},
		{TotalVideosLabel, strconv.Itoa(playlist.TotalVideos())},
		{OutputDirLabel, outputDir},
	}
	for _, row := range rows {
		fmt.Fprintf(c.out, "%s %s\n", LabelStyle.Render(row[0]+":"), ValueStyle.Render(row[1]))
	}
	fmt.Fprintln(c.out)
}

// VideoTable prints the titled two-column table of playlist entries. Titles
// are truncated for display only.
func (c *Console) VideoTable(videos []*model.PlaylistVideo) {
	fmt.Fprintln(c.out, RenderVideoTable(videos))
}

// RenderVideoTable renders the playlist entries as a table with a title line
func RenderVideoTable(videos []*model.PlaylistVideo) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers(TableHeaderIndex, TableHeaderTitle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderCellStyle
			case col == 0:
				return IndexCellStyle
			default:
				return TitleCellStyle
			}
		})

	for i, video := range videos {
		t.Row(strconv.Itoa(i+1), video.DisplayTitle(i+1))
	}

	return lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(TableTitle), t.Render())
}

// Status runs fn while showing label. On a terminal the label carries an
// animated spinner that is cleared when fn returns.
func (c *Console) Status(label string, fn func() error) error {
	if !c.live {
		fmt.Fprintln(c.out, DimStyle.Render(label))
		return fn()
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	frame := 0
	fmt.Fprintf(c.out, "\r%s %s", Spinner(frame), label)
	for {
		select {
		case err := <-done:
			fmt.Fprint(c.out, clearLine)
			return err
		case <-ticker.C:
			frame++
			fmt.Fprintf(c.out, "\r%s %s", Spinner(frame), label)
		}
	}
}

// Error prints a fatal error message
func (c *Console) Error(err error) {
	fmt.Fprintln(c.out, ErrorStyle.Render(ErrorPrefix+err.Error()))
}

// Interrupted prints the message shown when a run was cancelled
func (c *Console) Interrupted() {
	fmt.Fprintln(c.out, ErrorStyle.Render(IconError+" "+InterruptedText))
}

// Success prints the final completion message
func (c *Console) Success() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, SuccessStyle.Render(IconSuccess+" "+CompletedText))
}

// Summary prints how many videos succeeded and failed, followed by each failure
func (c *Console) Summary(summary model.Summary) {
	fmt.Fprintln(c.out, RenderSummary(summary))
}

// RenderSummary renders the run summary
func RenderSummary(summary model.Summary) string {
	var b strings.Builder

	counts := fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed)
	if summary.Skipped > 0 {
		counts += fmt.Sprintf(", %d skipped", summary.Skipped)
	}
	countsStyle := SuccessStyle
	if summary.HasErrors() {
		countsStyle = ErrorStyle
	}
	b.WriteString(countsStyle.Render(counts))

	for _, video := range summary.Failures {
		title := video.Title
		if title == "" {
			title = video.ID
		}
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("  %s %s: %s", IconError, title, video.Error)))
	}
	return b.String()
}

// barWidth returns the progress bar width for the current terminal
func (c *Console) barWidth() int {
	w := c.width / 3
	if w < MinBarWidth {
		return MinBarWidth
	}
	if w > MaxBarWidth {
		return MaxBarWidth
	}
	return w
}
