package download

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ytget/yt-playlist/internal/model"
)

// Defaults passed to the extraction library
const (
	DefaultFormat           = "best"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
)

// VideoError is a failure of a single video download. It never aborts a run.
type VideoError struct {
	Index   int
	VideoID string
	URL     string
	Cause   error
}

// Error implements the error interface
func (e *VideoError) Error() string {
	return fmt.Sprintf("video %d (%s): %v", e.Index, e.VideoID, e.Cause)
}

// Unwrap returns the underlying cause error
func (e *VideoError) Unwrap() error {
	return e.Cause
}

// Service runs a playlist download, one video at a time
type Service struct {
	fetcher          Fetcher
	format           string
	filenameTemplate string
	logger           *zap.Logger
	onUpdate         func(*model.PlaylistVideo)
}

// NewService creates a new download service
func NewService(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:          fetcher,
		format:           DefaultFormat,
		filenameTemplate: DefaultFilenameTemplate,
		logger:           logger,
	}
}

// SetFormat sets the format selector passed to the library
func (s *Service) SetFormat(format string) {
	if format == "" {
		format = DefaultFormat
	}
	s.format = format
}

// SetFilenameTemplate sets the output filename template
func (s *Service) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.filenameTemplate = template
}

// SetUpdateCallback sets the callback invoked on every video status change
func (s *Service) SetUpdateCallback(callback func(*model.PlaylistVideo)) {
	s.onUpdate = callback
}

// Run downloads videos into destination in order. The overall counter of
// display is advanced exactly once per processed video, whether the download
// succeeded or failed. A cancelled ctx stops the loop before the next video;
// the returned summary counts unprocessed videos as skipped.
func (s *Service) Run(ctx context.Context, videos []*model.PlaylistVideo, destination string, display ProgressDisplay) model.Summary {
	outputTemplate := filepath.Join(destination, s.filenameTemplate)

	for i, video := range videos {
		if ctx.Err() != nil {
			s.logger.Warn("run cancelled", zap.Int("remaining", len(videos)-i))
			break
		}
		s.downloadOne(ctx, i+1, video, outputTemplate, display)
	}

	summary := model.Summarize(videos)
	s.logger.Info("run finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
	)
	return summary
}

// downloadOne processes a single entry; index is 1-based
func (s *Service) downloadOne(ctx context.Context, index int, video *model.PlaylistVideo, outputTemplate string, display ProgressDisplay) {
	url := video.WatchURL()
	title := video.TitleOrPlaceholder(index)

	bar := display.NewVideoBar(video.DisplayTitle(index))
	reporter := NewProgressReporter(bar)

	s.setStatus(video, model.VideoStatusDownloading, "")
	s.logger.Info("download started",
		zap.Int("index", index),
		zap.String("id", video.ID),
		zap.String("url", url),
	)

	err := s.fetcher.Download(ctx, model.DownloadRequest{
		URL:            url,
		VideoID:        video.ID,
		Title:          title,
		Format:         s.format,
		OutputTemplate: outputTemplate,
	}, reporter.Handle)

	display.Advance()

	if err != nil {
		verr := &VideoError{Index: index, VideoID: video.ID, URL: url, Cause: err}
		bar.MarkFailed(verr)
		s.setStatus(video, model.VideoStatusError, err.Error())
		s.logger.Error("download failed",
			zap.Int("index", index),
			zap.String("id", video.ID),
			zap.Error(err),
		)
		return
	}

	display.RemoveVideoBar(bar)
	s.setStatus(video, model.VideoStatusCompleted, "")
	s.logger.Info("download finished",
		zap.Int("index", index),
		zap.String("id", video.ID),
		zap.Int("events", reporter.Events()),
	)
}

func (s *Service) setStatus(video *model.PlaylistVideo, status model.VideoStatus, errMsg string) {
	video.Status = status
	video.Error = errMsg
	s.notifyUpdate(video)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(video *model.PlaylistVideo) {
	if s.onUpdate != nil {
		s.onUpdate(video)
	}
}
