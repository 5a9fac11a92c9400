package model

// Summary counts the outcome of one playlist run
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Failures  []*PlaylistVideo
}

// Summarize builds a run summary from the video statuses. Videos that were
// never processed (interrupted run) are counted as skipped.
func Summarize(videos []*PlaylistVideo) Summary {
	s := Summary{Total: len(videos)}
	for _, v := range videos {
		switch v.Status {
		case VideoStatusCompleted:
			s.Succeeded++
		case VideoStatusError:
			s.Failed++
			s.Failures = append(s.Failures, v)
		default:
			s.Skipped++
		}
	}
	return s
}

// HasErrors reports whether any video failed
func (s Summary) HasErrors() bool {
	return s.Failed > 0
}

// Processed returns the number of videos that went through a download call
func (s Summary) Processed() int {
	return s.Succeeded + s.Failed
}
