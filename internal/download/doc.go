package download

// Package download implements the playlist download loop on top of an
// extraction library. Videos are fetched one at a time; transfer events are
// forwarded to the console through a per-video ProgressReporter, and failures
// are recorded on the video without stopping the run.
