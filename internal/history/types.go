package history

import (
	"time"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/analysis"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
)

// AnalysisEvent wraps a pipeline event with a unique history ID.
type AnalysisEvent struct {
	ID string `json:"id"`
	analysis.Event
}

// WSMessage is the envelope for all WebSocket messages.
type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// StatsSnapshot is a point-in-time snapshot of accumulated statistics.
type StatsSnapshot struct {
	TotalAnalyses  uint64            `json:"total_analyses"`
	DangerousCount uint64            `json:"dangerous_count"`
	FallbackCount  uint64            `json:"fallback_count"`
	VerdictCounts  map[string]uint64 `json:"verdict_counts"`
	SourceCounts   map[string]uint64 `json:"source_counts"`
	RuleCounts     map[string]uint64 `json:"rule_counts"`
	SizeHistogram  [5]uint64         `json:"size_histogram"`
	TimeSeries     []TimeSeriesPoint `json:"time_series"`
}

// TimeSeriesPoint is a single point in the 60-minute time series.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Count     uint64    `json:"count"`
	Dangerous uint64    `json:"dangerous"`
}

// InitialState is sent to clients on WebSocket connect.
type InitialState struct {
	Events []*AnalysisEvent  `json:"events"`
	Stats  *StatsSnapshot    `json:"stats"`
	Rules  *classify.RuleSet `json:"rules"`
}
