package download

import (
	"testing"

	"github.com/ytget/yt-playlist/internal/model"
)

func TestProgressReporter_DownloadingWithKnownTotal(t *testing.T) {
	bar := &fakeBar{}
	r := NewProgressReporter(bar)

	r.Handle(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 10, TotalBytes: 100})
	r.Handle(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 60, TotalBytes: 100})

	if len(bar.updates) != 2 {
		t.Fatalf("Expected 2 updates, got %d", len(bar.updates))
	}
	last, _ := bar.last()
	if last.DownloadedBytes != 60 || last.TotalBytes != 100 {
		t.Errorf("Expected 60/100, got %d/%d", last.DownloadedBytes, last.TotalBytes)
	}
}

func TestProgressReporter_UnknownTotalStaysIndeterminate(t *testing.T) {
	bar := &fakeBar{}
	r := NewProgressReporter(bar)

	r.Handle(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 10})
	if len(bar.updates) != 0 {
		t.Fatalf("Expected no update while total is unknown, got %d", len(bar.updates))
	}

	r.Handle(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 20, TotalBytes: 200})
	if len(bar.updates) != 1 {
		t.Fatalf("Expected update once total is known, got %d", len(bar.updates))
	}
}

func TestProgressReporter_FinishedForcesFull(t *testing.T) {
	bar := &fakeBar{}
	r := NewProgressReporter(bar)

	r.Handle(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 40, TotalBytes: 100})
	r.Handle(model.TransferEvent{Status: model.TransferFinished, DownloadedBytes: 90, TotalBytes: 100})

	last, ok := bar.last()
	if !ok {
		t.Fatal("Expected an update")
	}
	if last.DownloadedBytes != 100 || last.TotalBytes != 100 {
		t.Errorf("Expected bar forced to 100/100, got %d/%d", last.DownloadedBytes, last.TotalBytes)
	}
	if bar.completed {
		t.Error("Expected numeric completion, not MarkComplete")
	}
}

func TestProgressReporter_FinishedUsesLastKnownTotal(t *testing.T) {
	bar := &fakeBar{}
	r := NewProgressReporter(bar)

	r.Handle(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 40, TotalBytes: 500})
	r.Handle(model.TransferEvent{Status: model.TransferFinished})

	last, _ := bar.last()
	if last.DownloadedBytes != 500 || last.TotalBytes != 500 {
		t.Errorf("Expected 500/500 from last known total, got %d/%d", last.DownloadedBytes, last.TotalBytes)
	}
}

func TestProgressReporter_FinishedWithUnknownTotal(t *testing.T) {
	bar := &fakeBar{}
	r := NewProgressReporter(bar)

	r.Handle(model.TransferEvent{Status: model.TransferDownloading, DownloadedBytes: 40})
	r.Handle(model.TransferEvent{Status: model.TransferFinished})

	if len(bar.updates) != 0 {
		t.Errorf("Expected no numeric update, got %d", len(bar.updates))
	}
	if !bar.completed {
		t.Error("Expected MarkComplete when the total never became known")
	}
}

func TestProgressReporter_IgnoresOtherStatuses(t *testing.T) {
	bar := &fakeBar{}
	r := NewProgressReporter(bar)

	for _, status := range []model.TransferStatus{model.TransferError, "post_processing", "starting", ""} {
		r.Handle(model.TransferEvent{Status: status, DownloadedBytes: 1, TotalBytes: 2})
	}

	if len(bar.updates) != 0 || bar.completed || bar.failed != nil {
		t.Errorf("Expected bar untouched, got %+v", bar)
	}
	if r.Events() != 4 {
		t.Errorf("Expected 4 events counted, got %d", r.Events())
	}
}
