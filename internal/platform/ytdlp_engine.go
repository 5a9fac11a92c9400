package platform

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/yt-playlist/internal/model"
)

// DefaultProgressInterval is how often yt-dlp progress is forwarded
const DefaultProgressInterval = 100 * time.Millisecond

// YTDLPConfig configures the yt-dlp backed engine
type YTDLPConfig struct {
	// Executable is an explicit yt-dlp path; empty uses the resolved install
	Executable string
	// AutoInstall downloads a managed yt-dlp binary when none is found
	AutoInstall bool
}

// YTDLPEngine implements Extractor by driving the yt-dlp binary
type YTDLPEngine struct {
	cfg              YTDLPConfig
	progressInterval time.Duration
	logger           *zap.Logger

	installOnce sync.Once
	installErr  error
}

// NewYTDLPEngine creates a yt-dlp backed extractor
func NewYTDLPEngine(cfg YTDLPConfig, logger *zap.Logger) *YTDLPEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLPEngine{
		cfg:              cfg,
		progressInterval: DefaultProgressInterval,
		logger:           logger,
	}
}

// ensureInstalled installs yt-dlp once per process when allowed
func (e *YTDLPEngine) ensureInstalled(ctx context.Context) error {
	if e.cfg.Executable != "" || !e.cfg.AutoInstall {
		return nil
	}
	e.installOnce.Do(func() {
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			e.installErr = fmt.Errorf("failed to install yt-dlp: %w", err)
		}
	})
	return e.installErr
}

func (e *YTDLPEngine) command() *ytdlp.Command {
	cmd := ytdlp.New()
	if e.cfg.Executable != "" {
		cmd.SetExecutable(e.cfg.Executable)
	}
	return cmd
}

// ExtractFlat lists entries with --flat-playlist --dump-single-json
func (e *YTDLPEngine) ExtractFlat(ctx context.Context, url string) (*FlatPlaylist, error) {
	if err := e.ensureInstalled(ctx); err != nil {
		return nil, err
	}

	res, err := e.command().
		FlatPlaylist().
		DumpSingleJSON().
		Quiet().
		NoWarnings().
		Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp extraction failed: %w", err)
	}

	return parseFlatPlaylist(res.Stdout)
}

// Download fetches one video into req.OutputTemplate
func (e *YTDLPEngine) Download(ctx context.Context, req model.DownloadRequest, onEvent func(model.TransferEvent)) error {
	if err := e.ensureInstalled(ctx); err != nil {
		return err
	}

	dl := e.command().
		Format(req.Format).
		Output(req.OutputTemplate).
		Quiet().
		NoWarnings()

	if onEvent != nil {
		// --progress keeps progress lines flowing under --quiet
		dl.Progress().ProgressFunc(e.progressInterval, func(update ytdlp.ProgressUpdate) {
			ev := transferEvent(string(update.Status), int64(update.DownloadedBytes), int64(update.TotalBytes), update.Started, time.Now())
			if eta := update.ETA(); eta > 0 {
				ev.ETA = eta
			}
			onEvent(ev)
		})
	}

	if _, err := dl.Run(ctx, req.URL); err != nil {
		e.logger.Debug("yt-dlp download failed", zap.String("url", req.URL), zap.Error(err))
		return fmt.Errorf("yt-dlp download failed: %w", err)
	}
	return nil
}

// parseFlatPlaylist decodes yt-dlp's --dump-single-json output. A document
// without an "entries" key yields a playlist with nil Entries.
func parseFlatPlaylist(output string) (*FlatPlaylist, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, fmt.Errorf("yt-dlp returned no output")
	}

	info, err := ytdlp.ParseExtractedInfo([]byte(output))
	if err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	return flatPlaylistFromInfo(info), nil
}

// flatPlaylistFromInfo maps yt-dlp's extracted info onto a FlatPlaylist
func flatPlaylistFromInfo(info *ytdlp.ExtractedInfo) *FlatPlaylist {
	playlist := &FlatPlaylist{
		ID:    info.ID,
		Title: deref(info.Title),
	}
	if info.Entries == nil {
		return playlist
	}

	playlist.Entries = make([]FlatEntry, 0, len(info.Entries))
	for _, entry := range info.Entries {
		if entry == nil {
			continue
		}
		playlist.Entries = append(playlist.Entries, FlatEntry{
			ID:    entry.ID,
			Title: deref(entry.Title),
			URL:   deref(entry.URL),
		})
	}
	return playlist
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// transferEvent builds a TransferEvent from raw counters, deriving speed and
// ETA from the elapsed time since started when both are available.
func transferEvent(status string, downloaded, total int64, started, now time.Time) model.TransferEvent {
	ev := model.TransferEvent{
		Status:          model.TransferStatus(status),
		DownloadedBytes: downloaded,
		TotalBytes:      total,
	}
	if total < 0 {
		ev.TotalBytes = 0
	}

	if started.IsZero() || downloaded <= 0 {
		return ev
	}
	elapsed := now.Sub(started).Seconds()
	if elapsed <= 0 {
		return ev
	}
	ev.Speed = float64(downloaded) / elapsed
	if ev.TotalBytes > downloaded && ev.Speed > 0 {
		ev.ETA = time.Duration(float64(ev.TotalBytes-downloaded) / ev.Speed * float64(time.Second))
	}
	return ev
}
