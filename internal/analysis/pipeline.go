// Package analysis orchestrates the two analysis paths: the local
// classifier, which always answers, and the optional remote analyzer, whose
// output must survive validation to be used. Fallback policy lives here so
// neither path needs to know about the other.
package analysis

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/audit"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/remote"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/sniff"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"
)

// DefaultRemoteTimeout bounds a single remote analysis call. An unbounded
// wait on the remote path would make the fallback unreachable.
const DefaultRemoteTimeout = 60 * time.Second

// Observer is a callback that receives one event per completed analysis.
type Observer func(Event)

// Event summarizes a completed analysis for observers.
type Event struct {
	Timestamp  time.Time               `json:"timestamp"`
	AnalysisID string                  `json:"analysis_id"`
	File       classify.FileDescriptor `json:"file"`
	Verdict    verdict.Verdict         `json:"verdict"`
	Source     Source                  `json:"source"`
	RuleName   string                  `json:"rule_name,omitempty"`
	Dangerous  bool                    `json:"dangerous"`
	Mismatches int                     `json:"mismatches,omitempty"`
}

// Pipeline drives one analysis per file submission and the chat sessions
// that follow.
type Pipeline struct {
	classifier    *classify.Classifier
	remote        remote.Analyzer // nil when the capability is absent
	auditLogger   *audit.Logger
	remoteTimeout time.Duration

	generation atomic.Uint64

	sessionMu sync.Mutex
	session   *Session

	observerMu sync.RWMutex
	observers  []Observer
}

// New creates a pipeline. ra may be nil; the pipeline then runs local-only.
func New(classifier *classify.Classifier, ra remote.Analyzer, auditLogger *audit.Logger) *Pipeline {
	return &Pipeline{
		classifier:    classifier,
		remote:        ra,
		auditLogger:   auditLogger,
		remoteTimeout: DefaultRemoteTimeout,
	}
}

// SetRemoteTimeout overrides the per-call remote timeout.
func (p *Pipeline) SetRemoteTimeout(d time.Duration) {
	if d > 0 {
		p.remoteTimeout = d
	}
}

// Classifier exposes the local classifier (for rule listing).
func (p *Pipeline) Classifier() *classify.Classifier {
	return p.classifier
}

// RemoteAvailable reports whether the remote capability can be attempted.
func (p *Pipeline) RemoteAvailable() bool {
	return p.remote != nil && p.remote.Available()
}

// Analyze runs one submission through both paths. The local result is
// always computed first, as the guaranteed-available baseline, and the
// remote analyzer, when present, may replace it. Remote errors and
// validation rejections downgrade to the local result with the reason
// recorded on the report.
//
// Each call starts a new generation: reports from earlier calls become
// stale, and their chat sessions refuse further sends.
func (p *Pipeline) Analyze(ctx context.Context, d classify.FileDescriptor, head []byte) *Report {
	gen := p.generation.Add(1)

	rule := p.classifier.Rule(d)
	local := p.classifier.Classify(d)

	ext, _ := d.Extension()
	report := &Report{
		AnalysisID: uuid.NewString(),
		File:       d,
		Result:     local,
		Source:     SourceLocal,
		RuleName:   rule.Name,
		Signature:  sniff.Detect(head),
		Mismatches: sniff.Compare(ext, head),
		generation: gen,
	}

	if p.RemoteAvailable() {
		rctx, cancel := context.WithTimeout(ctx, p.remoteTimeout)
		res, err := p.remote.Analyze(rctx, d, head)
		cancel()
		if err != nil {
			report.Source = SourceFallback
			report.FallbackReason = err.Error()
		} else {
			report.Result = res
			report.Source = SourceRemote
			report.RuleName = ""
		}
	}

	p.auditLogger.Log(audit.Entry{
		AnalysisID:     report.AnalysisID,
		FileName:       d.Name,
		SizeBytes:      d.SizeBytes,
		Verdict:        string(report.Result.Verdict),
		Source:         string(report.Source),
		RuleName:       report.RuleName,
		FallbackReason: report.FallbackReason,
		Dangerous:      report.Result.IsDangerous,
		Mismatches:     len(report.Mismatches),
	})

	p.notify(Event{
		Timestamp:  time.Now().UTC(),
		AnalysisID: report.AnalysisID,
		File:       d,
		Verdict:    report.Result.Verdict,
		Source:     report.Source,
		RuleName:   report.RuleName,
		Dangerous:  report.Result.IsDangerous,
		Mismatches: len(report.Mismatches),
	})

	return report
}

// Stale reports whether a newer submission superseded this report.
func (p *Pipeline) Stale(r *Report) bool {
	return r == nil || r.generation != p.generation.Load()
}

// AddObserver registers a callback invoked for every completed analysis.
func (p *Pipeline) AddObserver(fn Observer) {
	p.observerMu.Lock()
	defer p.observerMu.Unlock()
	p.observers = append(p.observers, fn)
}

func (p *Pipeline) notify(event Event) {
	p.observerMu.RLock()
	observers := p.observers
	p.observerMu.RUnlock()

	for _, fn := range observers {
		fn(event)
	}
}
