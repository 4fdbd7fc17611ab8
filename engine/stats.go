package engine

import (
	"slices"
	"time"
)

// statsCapacity bounds the frame-time history
const statsCapacity = 4096

// Stats records per-frame render durations in a bounded ring
type Stats struct {
	samples []time.Duration
	next    int
	full    bool

	frames  int
	cells   int64
	started time.Time
	ended   time.Time
}

// NewStats creates an empty recorder
func NewStats() *Stats {
	return &Stats{samples: make([]time.Duration, 0, statsCapacity)}
}

// Record adds one frame's render duration observed at now
func (s *Stats) Record(now time.Time, d time.Duration) {
	if s.frames == 0 {
		s.started = now
	}
	s.ended = now
	s.frames++

	if len(s.samples) < statsCapacity {
		s.samples = append(s.samples, d)
		return
	}
	s.samples[s.next] = d
	s.next = (s.next + 1) % statsCapacity
	s.full = true
}

// AddCells counts terminal cells written for the current frame
func (s *Stats) AddCells(n int) {
	s.cells += int64(n)
}

// Samples returns retained durations oldest first, in milliseconds
func (s *Stats) Samples() []float64 {
	out := make([]float64, 0, len(s.samples))
	appendMs := func(ds []time.Duration) {
		for _, d := range ds {
			out = append(out, float64(d)/float64(time.Millisecond))
		}
	}
	if s.full {
		appendMs(s.samples[s.next:])
		appendMs(s.samples[:s.next])
	} else {
		appendMs(s.samples)
	}
	return out
}

// Summary aggregates the recorded frames
type Summary struct {
	Frames      int
	AchievedFPS float64
	Mean        time.Duration
	P95         time.Duration
	Max         time.Duration

	CellsPerFrame float64 // Zero when the display does not report cells
}

// Summary computes aggregates over the retained samples
func (s *Stats) Summary() Summary {
	sum := Summary{Frames: s.frames}
	if len(s.samples) == 0 {
		return sum
	}
	sum.CellsPerFrame = float64(s.cells) / float64(s.frames)

	if elapsed := s.ended.Sub(s.started); elapsed > 0 && s.frames > 1 {
		sum.AchievedFPS = float64(s.frames-1) / elapsed.Seconds()
	}

	sorted := slices.Clone(s.samples)
	slices.Sort(sorted)
	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	sum.Mean = total / time.Duration(len(sorted))
	sum.P95 = sorted[len(sorted)*95/100]
	sum.Max = sorted[len(sorted)-1]
	return sum
}
