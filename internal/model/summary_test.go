package model

import "testing"

func TestSummarize(t *testing.T) {
	videos := []*PlaylistVideo{
		{ID: "a", Status: VideoStatusCompleted},
		{ID: "b", Status: VideoStatusError, Error: "boom"},
		{ID: "c", Status: VideoStatusCompleted},
		{ID: "d", Status: VideoStatusPending},
	}

	s := Summarize(videos)

	if s.Total != 4 {
		t.Errorf("Expected total 4, got %d", s.Total)
	}
	if s.Succeeded != 2 {
		t.Errorf("Expected 2 succeeded, got %d", s.Succeeded)
	}
	if s.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", s.Failed)
	}
	if s.Skipped != 1 {
		t.Errorf("Expected 1 skipped, got %d", s.Skipped)
	}
	if s.Processed() != 3 {
		t.Errorf("Expected 3 processed, got %d", s.Processed())
	}
	if !s.HasErrors() {
		t.Error("Expected HasErrors to be true")
	}
	if len(s.Failures) != 1 || s.Failures[0].ID != "b" {
		t.Errorf("Expected failures to list video b, got %v", s.Failures)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.HasErrors() {
		t.Errorf("Expected empty summary, got %+v", s)
	}
}
