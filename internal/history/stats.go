package history

import (
	"sync"
	"time"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/analysis"
)

const timeSeriesMinutes = 60

// Size histogram bucket upper bounds in bytes; the last bucket is open.
var sizeBucketBounds = [4]int64{
	10 * 1024,         // <10 KB
	1024 * 1024,       // <1 MB
	10 * 1024 * 1024,  // <10 MB
	100 * 1024 * 1024, // <100 MB
}

// Stats accumulates statistics from analysis events.
type Stats struct {
	mu sync.RWMutex

	totalAnalyses  uint64
	dangerousCount uint64
	fallbackCount  uint64

	verdictCounts map[string]uint64
	sourceCounts  map[string]uint64
	ruleCounts    map[string]uint64
	sizeHist      [5]uint64

	// Per-minute buckets for the last 60 minutes
	timeBuckets [timeSeriesMinutes]timeBucket
}

type timeBucket struct {
	minute    time.Time // truncated to minute
	count     uint64
	dangerous uint64
}

// NewStats creates a new stats accumulator.
func NewStats() *Stats {
	return &Stats{
		verdictCounts: make(map[string]uint64),
		sourceCounts:  make(map[string]uint64),
		ruleCounts:    make(map[string]uint64),
	}
}

// Record ingests a single analysis event.
func (s *Stats) Record(event *AnalysisEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalAnalyses++

	if event.Dangerous {
		s.dangerousCount++
	}
	if event.Source == analysis.SourceFallback {
		s.fallbackCount++
	}

	s.verdictCounts[string(event.Verdict)]++
	s.sourceCounts[string(event.Source)]++
	if event.RuleName != "" {
		s.ruleCounts[event.RuleName]++
	}

	s.sizeHist[sizeBucket(event.File.SizeBytes)]++

	// Time series
	now := event.Timestamp.Truncate(time.Minute)
	idx := now.Minute() % timeSeriesMinutes
	if s.timeBuckets[idx].minute != now {
		s.timeBuckets[idx] = timeBucket{minute: now}
	}
	s.timeBuckets[idx].count++
	if event.Dangerous {
		s.timeBuckets[idx].dangerous++
	}
}

func sizeBucket(n int64) int {
	for i, bound := range sizeBucketBounds {
		if n < bound {
			return i
		}
	}
	return len(sizeBucketBounds)
}

// Snapshot returns a point-in-time copy of the stats.
func (s *Stats) Snapshot() *StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &StatsSnapshot{
		TotalAnalyses:  s.totalAnalyses,
		DangerousCount: s.dangerousCount,
		FallbackCount:  s.fallbackCount,
		VerdictCounts:  copyMap(s.verdictCounts),
		SourceCounts:   copyMap(s.sourceCounts),
		RuleCounts:     copyMap(s.ruleCounts),
		SizeHistogram:  s.sizeHist,
	}

	// Build time series from buckets (last 60 minutes, chronological)
	now := time.Now().UTC().Truncate(time.Minute)
	cutoff := now.Add(-timeSeriesMinutes * time.Minute)
	for i := 0; i < timeSeriesMinutes; i++ {
		t := cutoff.Add(time.Duration(i+1) * time.Minute)
		idx := t.Minute() % timeSeriesMinutes
		b := s.timeBuckets[idx]
		if b.minute == t {
			snap.TimeSeries = append(snap.TimeSeries, TimeSeriesPoint{
				Timestamp: b.minute,
				Count:     b.count,
				Dangerous: b.dangerous,
			})
		} else {
			snap.TimeSeries = append(snap.TimeSeries, TimeSeriesPoint{
				Timestamp: t,
				Count:     0,
				Dangerous: 0,
			})
		}
	}

	return snap
}

func copyMap(m map[string]uint64) map[string]uint64 {
	c := make(map[string]uint64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
