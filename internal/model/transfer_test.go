package model

import (
	"testing"
	"time"
)

func TestTransferEvent_Fraction(t *testing.T) {
	tests := []struct {
		name     string
		event    TransferEvent
		expected float64
	}{
		{"unknown total", TransferEvent{DownloadedBytes: 10}, 0},
		{"half", TransferEvent{DownloadedBytes: 50, TotalBytes: 100}, 0.5},
		{"overshoot clamped", TransferEvent{DownloadedBytes: 150, TotalBytes: 100}, 1},
		{"complete", TransferEvent{DownloadedBytes: 100, TotalBytes: 100}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Fraction(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{-1, "-:--:--"},
		{0, "-:--:--"},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{3661 * time.Second, "01:01:01"},
		{7323 * time.Second, "02:02:03"},
	}

	for _, test := range tests {
		result := FormatETA(test.eta)
		if result != test.expected {
			t.Errorf("FormatETA(%v) = %s, expected %s", test.eta, result, test.expected)
		}
	}
}
