package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, playlist resolution, and the extraction engines backed
// by yt-dlp (github.com/lrstanley/go-ytdlp) or the native ytget/ytdlp library.
