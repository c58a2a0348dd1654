package analysis

import (
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/sniff"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"
)

// Source identifies which path produced the result carried by a report.
type Source string

const (
	// SourceLocal means the remote capability was absent and the local
	// classifier's result was used directly.
	SourceLocal Source = "local"
	// SourceRemote means the remote analyzer's result passed validation
	// and was chosen.
	SourceRemote Source = "remote"
	// SourceFallback means the remote analyzer was attempted and failed;
	// the local result stands in.
	SourceFallback Source = "fallback"
)

// Report is the full outcome of one analysis submission.
type Report struct {
	AnalysisID     string                  `json:"analysis_id"`
	File           classify.FileDescriptor `json:"file"`
	Result         *verdict.AnalysisResult `json:"result"`
	Source         Source                  `json:"source"`
	RuleName       string                  `json:"rule_name,omitempty"`
	FallbackReason string                  `json:"fallback_reason,omitempty"`
	Signature      sniff.Detection         `json:"signature"`
	Mismatches     []sniff.Mismatch        `json:"mismatches"`

	// generation orders submissions so stale reports can be recognized.
	generation uint64
}

// UsedFallback reports whether the remote path was attempted and lost.
func (r *Report) UsedFallback() bool {
	return r.Source == SourceFallback
}
