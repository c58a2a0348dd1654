// Package remote defines the boundary to the AI-backed deep analyzer. The
// analyzer is an optional capability: it may be entirely absent, and every
// error it returns, ErrUnavailable included, tells the caller to fall
// back to the local classifier.
package remote

import (
	"context"
	"errors"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"
)

// ErrUnavailable is returned when the remote capability is not configured
// or not reachable.
var ErrUnavailable = errors.New("remote analyzer unavailable")

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Analyzer attempts content-aware analysis through an external model.
//
// Analyze must only return results that already passed verdict.Validate;
// a reply the implementation cannot coerce into a valid AnalysisResult is
// an error, never a partial result.
type Analyzer interface {
	// Available reports whether the remote capability can be attempted.
	Available() bool

	// Analyze asks the model for a deep analysis of the file, described by
	// its descriptor and the first bytes of its content.
	Analyze(ctx context.Context, d classify.FileDescriptor, head []byte) (*verdict.AnalysisResult, error)

	// Chat continues an interactive conversation seeded with an analysis
	// result. history holds prior turns in order; message is the new user
	// message. Returns the assistant reply.
	Chat(ctx context.Context, seed *verdict.AnalysisResult, history []Message, message string) (string, error)
}
