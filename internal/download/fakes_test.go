package download

import (
	"context"
	"sync"

	"github.com/ytget/yt-playlist/internal/model"
)

// fakeBar records what the orchestrator and reporter did to one bar
type fakeBar struct {
	title     string
	updates   []model.TransferEvent
	completed bool
	failed    error
	removed   bool
}

func (b *fakeBar) Update(ev model.TransferEvent) { b.updates = append(b.updates, ev) }
func (b *fakeBar) MarkComplete()                 { b.completed = true }
func (b *fakeBar) MarkFailed(err error)          { b.failed = err }

func (b *fakeBar) last() (model.TransferEvent, bool) {
	if len(b.updates) == 0 {
		return model.TransferEvent{}, false
	}
	return b.updates[len(b.updates)-1], true
}

// fakeDisplay records overall advances and bar lifecycles
type fakeDisplay struct {
	bars     []*fakeBar
	advances int
	// advancesAtBar is the overall count when each bar was created
	advancesAtBar []int
}

func (d *fakeDisplay) NewVideoBar(title string) VideoBar {
	bar := &fakeBar{title: title}
	d.bars = append(d.bars, bar)
	d.advancesAtBar = append(d.advancesAtBar, d.advances)
	return bar
}

func (d *fakeDisplay) Advance() { d.advances++ }

func (d *fakeDisplay) RemoveVideoBar(bar VideoBar) {
	bar.(*fakeBar).removed = true
}

// fakeFetcher replays scripted events and fails selected URLs
type fakeFetcher struct {
	mu       sync.Mutex
	requests []model.DownloadRequest
	failURLs map[string]error
	events   []model.TransferEvent
	inFlight int
	maxInFly int
	onCall   func(req model.DownloadRequest)
}

func (f *fakeFetcher) Download(ctx context.Context, req model.DownloadRequest, onEvent func(model.TransferEvent)) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFly {
		f.maxInFly = f.inFlight
	}
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.onCall != nil {
		f.onCall(req)
	}
	for _, ev := range f.events {
		onEvent(ev)
	}
	if err, ok := f.failURLs[req.URL]; ok {
		return err
	}
	return nil
}
