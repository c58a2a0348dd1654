package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
)

func TestSession_SendAndHistory(t *testing.T) {
	fa := &fakeAnalyzer{available: true, result: remoteResult(), chatReply: "It is an installer."}
	p := newPipeline(fa)
	report := p.Analyze(context.Background(), classify.FileDescriptor{Name: "setup.exe", SizeBytes: 1}, nil)
	session := p.NewSession(report)

	reply, err := session.Send(context.Background(), "What does this file do?")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if reply != "It is an installer." {
		t.Errorf("unexpected reply: %q", reply)
	}

	hist := session.History()
	if len(hist) != 2 {
		t.Fatalf("expected 2 turns in history, got %d", len(hist))
	}
	if hist[0].Role != "user" || hist[1].Role != "assistant" {
		t.Errorf("unexpected turn order: %+v", hist)
	}
}

func TestSession_NoRemoteNoChat(t *testing.T) {
	p := newPipeline(nil)
	report := p.Analyze(context.Background(), classify.FileDescriptor{Name: "a.pdf", SizeBytes: 1}, nil)
	session := p.NewSession(report)

	_, err := session.Send(context.Background(), "hello")
	if !errors.Is(err, ErrNoChat) {
		t.Errorf("expected ErrNoChat, got %v", err)
	}
}

func TestSession_SupersededRefusesSends(t *testing.T) {
	fa := &fakeAnalyzer{available: true, result: remoteResult(), chatReply: "ok"}
	p := newPipeline(fa)

	first := p.Analyze(context.Background(), classify.FileDescriptor{Name: "a.exe", SizeBytes: 1}, nil)
	session := p.NewSession(first)

	// A new file selection invalidates the previous analysis and its chat.
	p.Analyze(context.Background(), classify.FileDescriptor{Name: "b.exe", SizeBytes: 1}, nil)

	_, err := session.Send(context.Background(), "still there?")
	if !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded, got %v", err)
	}
}

func TestSession_SerializedSends(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	fa := &fakeAnalyzer{available: true, result: remoteResult(), chatReply: "done", block: release, entered: entered}
	p := newPipeline(fa)
	report := p.Analyze(context.Background(), classify.FileDescriptor{Name: "a.exe", SizeBytes: 1}, nil)
	session := p.NewSession(report)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := session.Send(context.Background(), "first"); err != nil {
			t.Errorf("first send failed: %v", err)
		}
	}()

	// Wait until the first send is actually holding the in-flight slot.
	<-entered

	if _, err := session.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy while a reply is pending, got %v", err)
	}

	close(release)
	wg.Wait()

	// After the reply lands the session accepts new messages again.
	fa.block = nil
	if _, err := session.Send(context.Background(), "third"); err != nil {
		t.Errorf("send after completion failed: %v", err)
	}
}

func TestSessionFor(t *testing.T) {
	p := newPipeline(nil)
	report := p.Analyze(context.Background(), classify.FileDescriptor{Name: "a.pdf", SizeBytes: 1}, nil)
	p.NewSession(report)

	if _, ok := p.SessionFor(report.AnalysisID); !ok {
		t.Error("expected to find the session for the latest analysis")
	}
	if _, ok := p.SessionFor("unknown-id"); ok {
		t.Error("unknown analysis IDs must not resolve to a session")
	}

	// A newer session replaces the old one entirely.
	second := p.Analyze(context.Background(), classify.FileDescriptor{Name: "b.pdf", SizeBytes: 1}, nil)
	p.NewSession(second)
	if _, ok := p.SessionFor(report.AnalysisID); ok {
		t.Error("superseded session must not be retrievable")
	}
}
