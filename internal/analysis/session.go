package analysis

import (
	"context"
	"errors"
	"sync"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/remote"
)

var (
	// ErrSuperseded means a newer file submission invalidated this
	// session's analysis.
	ErrSuperseded = errors.New("analysis superseded by a newer submission")
	// ErrBusy means a prior message is still awaiting its reply. Turns are
	// serialized to keep the conversation in order.
	ErrBusy = errors.New("a message is already awaiting its reply")
	// ErrNoChat means chat requires the remote analyzer and it is absent.
	ErrNoChat = errors.New("chat requires the remote analyzer")
)

// Session is an interactive chat seeded from one analysis report.
type Session struct {
	pipe   *Pipeline
	report *Report

	mu      sync.Mutex
	busy    bool
	history []remote.Message
}

// NewSession creates the chat session for a report and makes it the
// pipeline's current session, replacing any previous one.
func (p *Pipeline) NewSession(r *Report) *Session {
	s := &Session{pipe: p, report: r}
	p.sessionMu.Lock()
	p.session = s
	p.sessionMu.Unlock()
	return s
}

// SessionFor returns the current session if it belongs to the given
// analysis ID. Sessions for superseded analyses are not retrievable.
func (p *Pipeline) SessionFor(analysisID string) (*Session, bool) {
	p.sessionMu.Lock()
	s := p.session
	p.sessionMu.Unlock()
	if s == nil || s.report == nil || s.report.AnalysisID != analysisID {
		return nil, false
	}
	return s, true
}

// Report returns the analysis this session was seeded from.
func (s *Session) Report() *Report {
	return s.report
}

// History returns a copy of the conversation so far.
func (s *Session) History() []remote.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]remote.Message(nil), s.history...)
}

// Send dispatches one user message and returns the assistant reply. Sends
// serialize: while one message awaits its reply, further sends fail with
// ErrBusy rather than interleaving turns. A session whose analysis was
// superseded refuses sends with ErrSuperseded.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	if !s.pipe.RemoteAvailable() {
		return "", ErrNoChat
	}
	if s.pipe.Stale(s.report) {
		return "", ErrSuperseded
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.busy = true
	history := append([]remote.Message(nil), s.history...)
	s.mu.Unlock()

	rctx, cancel := context.WithTimeout(ctx, s.pipe.remoteTimeout)
	reply, err := s.pipe.remote.Chat(rctx, s.report.Result, history, message)
	cancel()

	s.mu.Lock()
	s.busy = false
	if err == nil {
		s.history = append(s.history,
			remote.Message{Role: "user", Content: message},
			remote.Message{Role: "assistant", Content: reply},
		)
	}
	s.mu.Unlock()

	return reply, err
}
