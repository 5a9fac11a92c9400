package model

// Package model defines domain data structures used across the app: playlist
// entries, transfer events reported by the extraction library, and the
// per-run summary. Structures carry explicit status transitions so the
// orchestrator and the console can share them without extra bookkeeping.
