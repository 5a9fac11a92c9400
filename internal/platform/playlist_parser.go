package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/yt-playlist/internal/model"
)

// URL parameters
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// Playlist title heuristics
const (
	MinPrefixLength = 10
	PlaylistSuffix  = " Playlist"
)

// FlatEntry is one playlist entry as listed by flat extraction
type FlatEntry struct {
	ID    string
	Title string
	URL   string
}

// FlatPlaylist is the response of flat extraction. Entries is nil when the
// response carried no entries list at all, and empty for an empty playlist.
type FlatPlaylist struct {
	ID      string
	Title   string
	Entries []FlatEntry
}

// Extractor is the external extraction/download library seen by this tool
type Extractor interface {
	// ExtractFlat lists playlist entries without per-video metadata
	ExtractFlat(ctx context.Context, url string) (*FlatPlaylist, error)
	// Download fetches one video, reporting transfer events to onEvent
	Download(ctx context.Context, req model.DownloadRequest, onEvent func(model.TransferEvent)) error
}

// Resolver turns a playlist identifier into an ordered list of entries
type Resolver struct {
	extractor Extractor
	timeout   time.Duration
	logger    *zap.Logger
}

// NewResolver creates a resolver backed by the given extractor
func NewResolver(extractor Extractor, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		extractor: extractor,
		logger:    logger,
	}
}

// SetTimeout sets the timeout for resolution; 0 leaves it to the extractor
func (r *Resolver) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// Resolve fetches the playlist entries in flat mode. Failures are returned as
// *ResolveError; nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*model.Playlist, error) {
	url := strings.TrimSpace(identifier)
	if url == "" {
		return nil, newResolveError(ErrorResolution, identifier, fmt.Errorf("empty playlist URL"))
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	playlist := model.NewPlaylist(url)

	flat, err := r.extractor.ExtractFlat(ctx, url)
	if err != nil {
		r.logger.Warn("playlist resolution failed", zap.String("url", url), zap.Error(err))
		playlist.Error = err.Error()
		playlist.UpdateStatus(model.PlaylistStatusError)
		return nil, newResolveError(ErrorResolution, url, err)
	}
	if flat == nil || flat.Entries == nil {
		r.logger.Warn("response has no entries list", zap.String("url", url))
		return nil, newResolveError(ErrorNotAPlaylist, url, nil)
	}

	playlist.ID = flat.ID
	playlist.Title = flat.Title
	for _, entry := range flat.Entries {
		playlist.AddVideo(&model.PlaylistVideo{
			ID:    entry.ID,
			Title: entry.Title,
			URL:   entry.URL,
		})
	}
	playlist.UpdateStatus(model.PlaylistStatusReady)

	r.logger.Info("playlist resolved",
		zap.String("url", url),
		zap.String("title", playlist.DisplayTitle()),
		zap.Int("videos", playlist.TotalVideos()),
	)
	return playlist, nil
}

// isValidPlaylistURL checks if the URL carries a playlist parameter
func isValidPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// extractPlaylistID extracts the playlist ID from a YouTube playlist URL.
// Supported formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//
// A bare identifier without any URL syntax is returned as is.
func extractPlaylistID(url string) (string, error) {
	if !isValidPlaylistURL(url) {
		if url != "" && !strings.ContainsAny(url, "/?=&") {
			return url, nil
		}
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	parts := strings.SplitN(url, PlaylistURLParam, 2)
	playlistID := parts[1]

	// Remove any additional parameters (everything after &)
	if idx := strings.Index(playlistID, PlaylistParamSeparator); idx >= 0 {
		playlistID = playlistID[:idx]
	}

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}

	return playlistID, nil
}

// derivePlaylistTitle generates a title from the entries when the extractor
// cannot report one
func derivePlaylistTitle(entries []FlatEntry) string {
	if len(entries) == 0 {
		return ""
	}
	if len(entries) > 1 {
		commonPrefix := findCommonPrefix(entries[0].Title, entries[1].Title)
		if len(commonPrefix) > MinPrefixLength {
			return strings.TrimSpace(commonPrefix) + PlaylistSuffix
		}
	}
	if entries[0].Title == "" {
		return ""
	}
	return entries[0].Title + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
