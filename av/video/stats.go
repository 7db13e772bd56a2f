package video

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats is a snapshot of presenter activity.
type Stats struct {
	FramesSubmitted uint64
	FramesPresented uint64
	// FramesDropped counts frames replaced before they were presented.
	FramesDropped uint64
	FramesRejected uint64
	FormatChanges  uint64
	Redraws        uint64

	// TotalWait and PeakWait measure time Present spent waiting for the
	// render target to consume a frame.
	TotalWait   time.Duration
	PeakWait    time.Duration
	LastPresent time.Time
}

// presenterStats uses atomic counters on the frame path and a mutex only
// for the wait durations.
type presenterStats struct {
	submitted atomic.Uint64
	presented atomic.Uint64
	dropped   atomic.Uint64
	rejected  atomic.Uint64
	formats   atomic.Uint64
	redraws   atomic.Uint64

	mu          sync.Mutex
	totalWait   time.Duration
	peakWait    time.Duration
	lastPresent time.Time
}

func (s *presenterStats) recordPresent(wait time.Duration, at time.Time) {
	s.presented.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalWait += wait
	if wait > s.peakWait {
		s.peakWait = wait
	}
	s.lastPresent = at
}

func (s *presenterStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		FramesSubmitted: s.submitted.Load(),
		FramesPresented: s.presented.Load(),
		FramesDropped:   s.dropped.Load(),
		FramesRejected:  s.rejected.Load(),
		FormatChanges:   s.formats.Load(),
		Redraws:         s.redraws.Load(),
		TotalWait:       s.totalWait,
		PeakWait:        s.peakWait,
		LastPresent:     s.lastPresent,
	}
}
