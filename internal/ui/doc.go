// Package ui renders the terminal output of the downloader: the banner,
// playlist details, the video table and the two-level progress view. The
// progress view is a bubbletea program when stdout is a terminal and plain
// line output with a single progress bar otherwise.
package ui
