package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/ytget/yt-playlist/internal/download"
	"github.com/ytget/yt-playlist/internal/model"
)

// Messages sent from the download goroutine to the live program
type (
	addBarMsg struct {
		id    int
		label string
	}
	updateBarMsg struct {
		id int
		ev model.TransferEvent
	}
	completeBarMsg struct{ id int }
	failBarMsg     struct {
		id  int
		err string
	}
	removeBarMsg struct{ id int }
	advanceMsg   struct{}
	finishMsg    struct{}
	tickMsg      time.Time
)

// videoBarState is one per-video bar in the live view
type videoBarState struct {
	id          int
	label       string
	ev          model.TransferEvent
	determinate bool
	complete    bool
	failed      bool
	errText     string
}

// liveModel is the bubbletea model of the two-level progress view: the
// overall bar on top, per-video bars below it.
type liveModel struct {
	total    int
	done     int
	bars     []*videoBarState
	frame    int
	interval time.Duration
	finished bool

	overall progress.Model
	video   progress.Model
}

func newLiveModel(total int, interval time.Duration, barWidth int) *liveModel {
	return &liveModel{
		total:    total,
		interval: interval,
		overall: progress.New(
			progress.WithGradient(string(Cyan), string(Magenta)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		video: progress.New(
			progress.WithSolidFill(string(Cyan)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
	}
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh ticker
func (m *liveModel) Init() tea.Cmd {
	return tick(m.interval)
}

// Update applies one message to the view state
func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.frame++
		return m, tick(m.interval)

	case tea.WindowSizeMsg:
		width := msg.Width / 3
		if width < MinBarWidth {
			width = MinBarWidth
		}
		if width > MaxBarWidth {
			width = MaxBarWidth
		}
		m.overall.Width = width
		m.video.Width = width

	case addBarMsg:
		m.bars = append(m.bars, &videoBarState{id: msg.id, label: msg.label})

	case updateBarMsg:
		if bar := m.bar(msg.id); bar != nil {
			bar.ev = msg.ev
			bar.determinate = true
		}

	case completeBarMsg:
		if bar := m.bar(msg.id); bar != nil {
			bar.complete = true
		}

	case failBarMsg:
		if bar := m.bar(msg.id); bar != nil {
			bar.failed = true
			bar.errText = msg.err
		}

	case removeBarMsg:
		for i, bar := range m.bars {
			if bar.id == msg.id {
				m.bars = append(m.bars[:i], m.bars[i+1:]...)
				break
			}
		}

	case advanceMsg:
		m.done++

	case finishMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *liveModel) bar(id int) *videoBarState {
	for _, bar := range m.bars {
		if bar.id == id {
			return bar
		}
	}
	return nil
}

// View renders the overall bar followed by every visible video bar
func (m *liveModel) View() string {
	var b strings.Builder

	icon := Spinner(m.frame)
	if m.finished {
		icon = SuccessStyle.Render(IconSuccess)
	}
	fraction := 0.0
	if m.total > 0 {
		fraction = clamp(float64(m.done) / float64(m.total))
	}
	fmt.Fprintf(&b, "%s %s %s %s %s\n",
		icon,
		TitleStyle.Render(TotalProgressLabel),
		m.overall.ViewAs(fraction),
		fmt.Sprintf(PercentFormat, fraction*100),
		DimStyle.Render(fmt.Sprintf(VideosCounterFormat, m.done, m.total)),
	)

	for _, bar := range m.bars {
		b.WriteString(m.renderVideoBar(bar))
	}
	return b.String()
}

func (m *liveModel) renderVideoBar(bar *videoBarState) string {
	if bar.failed {
		line := ErrorStyle.Render(ErrorPrefix + bar.label)
		if bar.errText != "" {
			line += DimStyle.Render(MiddleDotSeparator + truncateRunes(bar.errText, LabelWidth))
		}
		return "  " + line + "\n"
	}

	label := LabelStyle.Render(DownloadingPrefix + bar.label)
	switch {
	case bar.complete:
		return fmt.Sprintf("  %s\n    %s %s\n", label, m.video.ViewAs(1), SuccessStyle.Render(IconSuccess))
	case !bar.determinate:
		return fmt.Sprintf("  %s\n    %s %s\n", label, m.video.ViewAs(0), DimStyle.Render(IconPending))
	default:
		fraction := bar.ev.Fraction()
		return fmt.Sprintf("  %s\n    %s %s %s\n",
			label,
			m.video.ViewAs(fraction),
			fmt.Sprintf(PercentFormat, fraction*100),
			DimStyle.Render(TransferText(bar.ev)),
		)
	}
}

// TransferText renders the bytes, speed and time remaining of an event
func TransferText(ev model.TransferEvent) string {
	total := UnknownSizeText
	if ev.HasTotal() {
		total = humanize.Bytes(uint64(ev.TotalBytes))
	}
	parts := []string{humanize.Bytes(uint64(max(ev.DownloadedBytes, 0))) + " / " + total}
	if ev.Speed > 0 {
		parts = append(parts, humanize.Bytes(uint64(ev.Speed))+"/s")
	}
	parts = append(parts, model.FormatETA(ev.ETA))
	return strings.Join(parts, MiddleDotSeparator)
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func truncateRunes(s string, n int) string {
	return model.TruncateTitle(strings.ReplaceAll(s, "\n", " "), n)
}

// liveDisplay forwards orchestrator calls to the live program
type liveDisplay struct {
	send   func(tea.Msg)
	nextID int
}

// NewVideoBar adds an indeterminate bar labelled with title
func (d *liveDisplay) NewVideoBar(title string) download.VideoBar {
	d.nextID++
	d.send(addBarMsg{id: d.nextID, label: title})
	return &liveBar{id: d.nextID, send: d.send}
}

// Advance moves the overall bar forward by one video
func (d *liveDisplay) Advance() {
	d.send(advanceMsg{})
}

// RemoveVideoBar drops a bar from the view
func (d *liveDisplay) RemoveVideoBar(bar download.VideoBar) {
	if lb, ok := bar.(*liveBar); ok {
		d.send(removeBarMsg{id: lb.id})
	}
}

// liveBar is the handle of one bar in the live program
type liveBar struct {
	id   int
	send func(tea.Msg)
}

func (b *liveBar) Update(ev model.TransferEvent) {
	b.send(updateBarMsg{id: b.id, ev: ev})
}

func (b *liveBar) MarkComplete() {
	b.send(completeBarMsg{id: b.id})
}

func (b *liveBar) MarkFailed(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	b.send(failBarMsg{id: b.id, err: msg})
}

// runLive drives fn inside a bubbletea program. The program is always
// stopped and the terminal restored before runLive returns.
func (c *Console) runLive(total int, fn func(download.ProgressDisplay)) (err error) {
	interval := time.Second / time.Duration(c.refreshRate)
	p := tea.NewProgram(
		newLiveModel(total, interval, c.barWidth()),
		tea.WithOutput(c.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
		tea.WithFPS(c.refreshRate),
	)

	exited := make(chan error, 1)
	go func() {
		_, runErr := p.Run()
		exited <- runErr
	}()

	defer func() {
		p.Send(finishMsg{})
		if runErr := <-exited; runErr != nil && err == nil {
			err = fmt.Errorf("live view: %w", runErr)
		}
	}()

	fn(&liveDisplay{send: p.Send})
	return nil
}
