package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/ytdlp/v2/client"
	"go.uber.org/zap"

	"github.com/ytget/yt-playlist/internal/model"
)

// NativeOutputExt is the container requested from the native library; it is
// also the extension of the written file
const NativeOutputExt = "mp4"

// nativeFetchFunc downloads url to outputPath, reporting byte counts
type nativeFetchFunc func(ctx context.Context, url, format, outputPath string, onProgress func(downloaded, total int64)) error

// NativeConfig configures the HTTP client of the native engine
type NativeConfig struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// NativeEngine implements Extractor with the pure-Go ytget/ytdlp library,
// so no yt-dlp binary is needed. It only understands YouTube playlist URLs.
type NativeEngine struct {
	cfg    client.Config
	logger *zap.Logger
	now    func() time.Time
	fetch  nativeFetchFunc
}

// NewNativeEngine creates a native extractor
func NewNativeEngine(cfg NativeConfig, logger *zap.Logger) *NativeEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &NativeEngine{
		cfg: client.Config{
			Timeout:   cfg.Timeout,
			Retries:   cfg.Retries,
			UserAgent: cfg.UserAgent,
		},
		logger: logger,
		now:    time.Now,
	}
	n.fetch = n.libraryFetch
	return n
}

// quietStdLog sends the standard logger, which the library writes its
// diagnostics to, into the run logger until the returned func is called
func (n *NativeEngine) quietStdLog() func() {
	return zap.RedirectStdLog(n.logger.Named("ytdlp"))
}

func (n *NativeEngine) httpClient() *http.Client {
	return client.NewWith(n.cfg).HTTPClient
}

// ExtractFlat lists the playlist items. The library does not expose the
// playlist title, so one is derived from the entries.
func (n *NativeEngine) ExtractFlat(ctx context.Context, url string) (*FlatPlaylist, error) {
	playlistID, err := extractPlaylistID(url)
	if err != nil {
		// Not a playlist URL at all: report a response without entries
		n.logger.Debug("no playlist id in url", zap.String("url", url), zap.Error(err))
		return &FlatPlaylist{}, nil
	}

	defer n.quietStdLog()()

	items, err := ytdlp.New().
		WithHTTPClient(n.httpClient()).
		GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]FlatEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, FlatEntry{
			ID:    it.VideoID,
			Title: it.Title,
		})
	}

	return &FlatPlaylist{
		ID:      playlistID,
		Title:   derivePlaylistTitle(entries),
		Entries: entries,
	}, nil
}

// Download fetches one video. The library reports byte counts only, so a
// finished event is emitted after a successful return.
func (n *NativeEngine) Download(ctx context.Context, req model.DownloadRequest, onEvent func(model.TransferEvent)) error {
	outputPath := ExpandOutputTemplate(req.OutputTemplate, req.Title, req.VideoID, NativeOutputExt)

	started := n.now()
	var last model.TransferEvent

	err := n.fetch(ctx, req.URL, req.Format, outputPath, func(downloaded, total int64) {
		last = transferEvent(string(model.TransferDownloading), downloaded, total, started, n.now())
		if onEvent != nil {
			onEvent(last)
		}
	})
	if err != nil {
		return fmt.Errorf("native download failed: %w", err)
	}

	if onEvent != nil {
		onEvent(model.TransferEvent{
			Status:          model.TransferFinished,
			DownloadedBytes: last.TotalBytes,
			TotalBytes:      last.TotalBytes,
		})
	}
	n.logger.Debug("native download finished", zap.String("url", req.URL), zap.String("path", outputPath))
	return nil
}

// libraryFetch is the nativeFetchFunc backed by ytget/ytdlp
func (n *NativeEngine) libraryFetch(ctx context.Context, url, format, outputPath string, onProgress func(downloaded, total int64)) error {
	defer n.quietStdLog()()

	_, err := ytdlp.New().
		WithHTTPClient(n.httpClient()).
		WithFormat(format, NativeOutputExt).
		WithOutputPath(outputPath).
		WithProgress(func(p ytdlp.Progress) {
			onProgress(int64(p.DownloadedSize), int64(p.TotalSize))
		}).
		Download(ctx, url)
	return err
}
