package model

import (
	"fmt"
	"time"
)

// PlaylistStatus represents the current status of a playlist
type PlaylistStatus string

const (
	PlaylistStatusResolving   PlaylistStatus = "resolving"
	PlaylistStatusReady       PlaylistStatus = "ready"
	PlaylistStatusDownloading PlaylistStatus = "downloading"
	PlaylistStatusCompleted   PlaylistStatus = "completed"
	PlaylistStatusError       PlaylistStatus = "error"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Display values
const (
	DefaultPlaylistTitle  = "Unknown Playlist"
	VideoTitlePlaceholder = "Video %d"
	MaxTitleLength        = 50
	TitleTruncateSuffix   = "..."
)

// PlaylistVideo is a lightweight descriptor of one playlist entry as returned
// by flat extraction. Title and URL may be empty.
type PlaylistVideo struct {
	ID     string      `json:"id"`
	Title  string      `json:"title,omitempty"`
	URL    string      `json:"url,omitempty"`
	Status VideoStatus `json:"status"`
	Error  string      `json:"error,omitempty"`
}

// Playlist represents a resolved playlist with its entries in order
type Playlist struct {
	ID        string           `json:"id,omitempty"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Videos    []*PlaylistVideo `json:"videos"`
	Status    PlaylistStatus   `json:"status"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(url string) *Playlist {
	now := time.Now()
	return &Playlist{
		URL:       url,
		Status:    PlaylistStatusResolving,
		Videos:    make([]*PlaylistVideo, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddVideo appends a video to the playlist, keeping extraction order
func (p *Playlist) AddVideo(video *PlaylistVideo) {
	if video.Status == "" {
		video.Status = VideoStatusPending
	}
	p.Videos = append(p.Videos, video)
	p.UpdatedAt = time.Now()
}

// TotalVideos returns the number of entries
func (p *Playlist) TotalVideos() int {
	return len(p.Videos)
}

// UpdateStatus updates the playlist status
func (p *Playlist) UpdateStatus(status PlaylistStatus) {
	p.Status = status
	p.UpdatedAt = time.Now()
}

// DisplayTitle returns the playlist title or the default placeholder
func (p *Playlist) DisplayTitle() string {
	if p.Title == "" {
		return DefaultPlaylistTitle
	}
	return p.Title
}

// WatchURL returns the entry URL, synthesizing the canonical watch URL from
// the ID when the extractor did not provide one.
func (v *PlaylistVideo) WatchURL() string {
	if v.URL != "" {
		return v.URL
	}
	return fmt.Sprintf(YouTubeVideoURLTemplate, v.ID)
}

// TitleOrPlaceholder returns the entry title, or "Video <index>" when the
// extractor did not provide one. index is 1-based.
func (v *PlaylistVideo) TitleOrPlaceholder(index int) string {
	if v.Title != "" {
		return v.Title
	}
	return fmt.Sprintf(VideoTitlePlaceholder, index)
}

// DisplayTitle returns the title shortened for labels and table rows.
// The full title is still used for the output filename.
func (v *PlaylistVideo) DisplayTitle(index int) string {
	return TruncateTitle(v.TitleOrPlaceholder(index), MaxTitleLength)
}

// TruncateTitle shortens title to at most max characters, replacing the
// tail with "..." when it is too long. Length is counted in runes.
func TruncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	keep := max - len(TitleTruncateSuffix)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + TitleTruncateSuffix
}
