package remote

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	ollama "github.com/JexSrs/go-ollama"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/sniff"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"
)

const (
	// DefaultHost and DefaultModel apply when neither flags nor the
	// OLLAMA_HOST / OLLAMA_MODEL environment variables are set.
	DefaultHost  = "http://localhost:11434"
	DefaultModel = "llama3.1"

	// maxPreviewBytes caps how much file content is quoted in the prompt.
	maxPreviewBytes = 2048
)

const analyzeSystem = `You are a file safety analyst. You receive metadata and a
content preview for one file and reply with a single JSON object, no prose and
no code fences, with exactly these fields:
"verdict" (one of "SAFE", "CAUTION", "DANGER"), "humanVerdict" (one sentence),
"summary", "simpleExplanation", "isDangerous" (boolean, true only when verdict
is "DANGER"), "whyItsDangerous" (string, may be empty), "solutions" (non-empty
array of strings, most important first), "technicalDetails", "fileType", and
"metadata" (object containing at least "suggestedApp" and "securityLevel").`

const chatSystem = `You are a file safety assistant. Answer the user's questions
about the analyzed file in plain language. Be concrete and brief.`

// OllamaAnalyzer is the Analyzer implementation backed by a local or remote
// Ollama server.
type OllamaAnalyzer struct {
	client *ollama.Ollama
	model  string
}

// NewOllamaAnalyzer creates an analyzer for the given host and model. Empty
// arguments fall back to OLLAMA_HOST / OLLAMA_MODEL, then to the defaults.
func NewOllamaAnalyzer(host, model string) (*OllamaAnalyzer, error) {
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = DefaultHost
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	if model == "" {
		model = os.Getenv("OLLAMA_MODEL")
	}
	if model == "" {
		model = DefaultModel
	}

	return &OllamaAnalyzer{
		client: ollama.New(*u),
		model:  model,
	}, nil
}

// Model returns the configured model name.
func (a *OllamaAnalyzer) Model() string {
	return a.model
}

// Available reports whether the client is constructed. Reachability is only
// discovered on the first call; failures there surface as analyze errors,
// which the pipeline already treats as fallback signals.
func (a *OllamaAnalyzer) Available() bool {
	return a != nil && a.client != nil
}

// Analyze sends the file description to the model and forces the reply
// through the result validation boundary. A reply that fails validation is
// an analyzer failure.
func (a *OllamaAnalyzer) Analyze(ctx context.Context, d classify.FileDescriptor, head []byte) (*verdict.AnalysisResult, error) {
	if !a.Available() {
		return nil, ErrUnavailable
	}

	out, err := a.generate(ctx, analyzeSystem, buildAnalyzePrompt(d, head))
	if err != nil {
		return nil, err
	}

	res, err := verdict.FromJSON([]byte(out))
	if err != nil {
		return nil, fmt.Errorf("remote reply rejected: %w", err)
	}
	return res, nil
}

// Chat continues the conversation about an analyzed file.
func (a *OllamaAnalyzer) Chat(ctx context.Context, seed *verdict.AnalysisResult, history []Message, message string) (string, error) {
	if !a.Available() {
		return "", ErrUnavailable
	}
	return a.generate(ctx, chatSystem, buildChatPrompt(seed, history, message))
}

// generate runs one model call under the caller's context. The underlying
// client has no context support, so the call runs in a goroutine and the
// result is abandoned on cancellation.
func (a *OllamaAnalyzer) generate(ctx context.Context, system, prompt string) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		res, err := a.client.Generate(
			a.client.Generate.WithModel(a.model),
			a.client.Generate.WithSystem(system),
			a.client.Generate.WithPrompt(prompt),
		)
		if err != nil {
			ch <- outcome{err: fmt.Errorf("ollama generate: %w", err)}
			return
		}
		if !res.Done {
			ch <- outcome{err: fmt.Errorf("ollama reply not finished (unexpected streaming)")}
			return
		}
		if res.Response == "" {
			ch <- outcome{err: fmt.Errorf("ollama returned an empty reply")}
			return
		}
		ch <- outcome{text: stripFences(res.Response)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case o := <-ch:
		return o.text, o.err
	}
}

// buildAnalyzePrompt describes the file to the model. The generic text/plain
// default exists to satisfy the model API's input expectations for unknown
// content; it stays at this boundary and never feeds back into the
// classifier's rules.
func buildAnalyzePrompt(d classify.FileDescriptor, head []byte) string {
	contentType := sniff.Detect(head).MIME
	if contentType == "" {
		contentType = "text/plain"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "File name: %s\n", d.Name)
	fmt.Fprintf(&b, "Size: %s (%d bytes)\n", classify.HumanSize(d.SizeBytes), d.SizeBytes)
	fmt.Fprintf(&b, "Content type: %s\n", contentType)
	if preview := printablePreview(head); preview != "" {
		fmt.Fprintf(&b, "Content preview:\n%s\n", preview)
	}
	return b.String()
}

func buildChatPrompt(seed *verdict.AnalysisResult, history []Message, message string) string {
	var b strings.Builder
	if seed != nil {
		fmt.Fprintf(&b, "Analysis context: %s Verdict: %s. %s\n\n",
			seed.Summary, seed.Verdict, seed.SimpleExplanation)
	}
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&b, "user: %s\n", message)
	return b.String()
}

// printablePreview returns a quoted snippet of the head if it is mostly
// valid text, empty otherwise. Binary content is described by its content
// type alone.
func printablePreview(head []byte) string {
	if len(head) > maxPreviewBytes {
		head = head[:maxPreviewBytes]
	}
	if len(head) == 0 || !utf8.Valid(head) {
		return ""
	}
	s := string(head)
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return ""
		}
	}
	return s
}

// stripFences removes the markdown code fences some models wrap around
// JSON replies.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
