package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ytget/yt-playlist/internal/config"
	"github.com/ytget/yt-playlist/internal/download"
	"github.com/ytget/yt-playlist/internal/model"
)

func newTestConsole(mode config.UIMode) (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewConsole(&out, &errOut, mode, config.DefaultRefreshRate), &out, &errOut
}

func TestNewConsole_Mode(t *testing.T) {
	tests := []struct {
		mode config.UIMode
		live bool
	}{
		{config.UIModeAuto, false},
		{config.UIModePlain, false},
		{config.UIModeLive, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c, _, _ := newTestConsole(tt.mode)
			if c.IsLive() != tt.live {
				t.Errorf("Expected live=%v for mode %s", tt.live, tt.mode)
			}
			if c.Width() != DefaultTerminalWidth {
				t.Errorf("Expected default width for a buffer, got %d", c.Width())
			}
		})
	}
}

func TestBanner(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModePlain)
	c.Banner()

	if !strings.Contains(out.String(), AppTitle) {
		t.Errorf("Expected banner to contain %q, got %q", AppTitle, out.String())
	}
	if !strings.Contains(out.String(), "╭") {
		t.Error("Expected a rounded border around the banner")
	}
}

func TestPlaylistInfo(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModePlain)
	playlist := model.NewPlaylist("https://www.youtube.com/playlist?list=PL1")
	playlist.Title = "Test Mix"
	playlist.AddVideo(&model.PlaylistVideo{ID: "a"})
	playlist.AddVideo(&model.PlaylistVideo{ID: "b"})

	c.PlaylistInfo(playlist, "/abs/output")

	got := out.String()
	for _, want := range []string{"Test Mix", "2", "/abs/output"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in output, got %q", want, got)
		}
	}
}

func TestPlaylistInfo_UnknownTitle(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModePlain)
	c.PlaylistInfo(model.NewPlaylist("x"), "/out")

	if !strings.Contains(out.String(), model.DefaultPlaylistTitle) {
		t.Errorf("Expected fallback title, got %q", out.String())
	}
}

func TestRenderVideoTable(t *testing.T) {
	videos := []*model.PlaylistVideo{
		{ID: "a", Title: "Song A"},
		{ID: "b"},
		{ID: "c", Title: strings.Repeat("y", 60)},
	}

	got := RenderVideoTable(videos)

	for _, want := range []string{TableTitle, TableHeaderIndex, TableHeaderTitle, "Song A", "Video 2", strings.Repeat("y", 47) + "..."} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in table, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, strings.Repeat("y", 48)) {
		t.Error("Expected long title to be truncated")
	}
	if strings.Index(got, "Song A") > strings.Index(got, "Video 2") {
		t.Error("Expected rows in playlist order")
	}
}

func TestStatus_Plain(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModePlain)
	called := false

	err := c.Status(FetchingText, func() error {
		called = true
		return errors.New("boom")
	})

	if !called {
		t.Fatal("Expected fn to be called")
	}
	if err == nil || err.Error() != "boom" {
		t.Errorf("Expected fn error to be returned, got %v", err)
	}
	if !strings.Contains(out.String(), FetchingText) {
		t.Errorf("Expected status label, got %q", out.String())
	}
}

func TestStatus_LiveClearsLine(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModeLive)

	if err := c.Status(FetchingText, func() error { return nil }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasSuffix(out.String(), clearLine) {
		t.Errorf("Expected spinner line to be cleared, got %q", out.String())
	}
}

func TestSuccessAndSummary(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModePlain)
	c.Success()
	c.Summary(model.Summary{
		Total:     3,
		Succeeded: 1,
		Failed:    1,
		Skipped:   1,
		Failures:  []*model.PlaylistVideo{{ID: "b", Title: "Song B", Error: "Private video"}},
	})

	got := out.String()
	for _, want := range []string{CompletedText, "1 succeeded, 1 failed, 1 skipped", "Song B: Private video"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in output, got %q", want, got)
		}
	}
}

func TestError(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModePlain)
	c.Error(errors.New("not a playlist"))

	if !strings.Contains(out.String(), "Error: not a playlist") {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestProgress_PlainRunsFn(t *testing.T) {
	c, out, _ := newTestConsole(config.UIModePlain)

	err := c.Progress(2, func(display download.ProgressDisplay) {
		bar := display.NewVideoBar("Song A")
		bar.Update(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 10, TotalBytes: 20})
		display.Advance()
		display.RemoveVideoBar(bar)

		bar = display.NewVideoBar("Song B")
		display.Advance()
		bar.MarkFailed(errors.New("Private video"))
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"[1/2] Downloading: Song A", "[2/2] Downloading: Song B", "Error: Song B", "Total Progress (2/2 videos)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, got)
		}
	}
}
