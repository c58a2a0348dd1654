package classify

import (
	"fmt"
	"strings"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"
)

// Classifier maps a file descriptor to exactly one analysis result. It is a
// pure function of its input: no I/O, no randomness, no shared state. It is
// also total: there is no descriptor it can fail on, because it backs the
// fallback path whenever the remote analyzer is unavailable.
type Classifier struct {
	table *Table
}

// New creates a classifier over the given match table.
func New(table *Table) *Classifier {
	return &Classifier{table: table}
}

// NewDefault creates a classifier with the built-in rule set.
func NewDefault() *Classifier {
	return New(BuildTable(DefaultRules()))
}

// Classify resolves the descriptor to a fully populated result. Identical
// descriptors always produce identical results.
func (c *Classifier) Classify(d FileDescriptor) *verdict.AnalysisResult {
	rule := c.Rule(d)

	fileType := "unknown"
	format := "UNKNOWN"
	if ext, ok := d.Extension(); ok {
		fileType = ext
		format = strings.ToUpper(ext)
	}

	name := d.Name
	if name == "" {
		name = "(unnamed file)"
	}

	return &verdict.AnalysisResult{
		Verdict:           rule.Verdict,
		HumanVerdict:      rule.HumanVerdict,
		Summary:           fmt.Sprintf("Basic analysis of %s", name),
		SimpleExplanation: rule.SimpleExplanation,
		IsDangerous:       rule.Verdict == verdict.Danger,
		Solutions:         append([]string(nil), rule.Solutions...),
		TechnicalDetails:  fmt.Sprintf("Format: %s\nSize: %s", format, HumanSize(d.SizeBytes)),
		FileType:          fileType,
		Metadata: map[string]any{
			verdict.MetaSuggestedApp:  rule.SuggestedApp,
			verdict.MetaSecurityLevel: verdict.SecurityLevel(rule.Verdict),
		},
	}
}

// Rule returns the rule the descriptor resolves to, without building a
// result. Used for audit trails and rule attribution.
func (c *Classifier) Rule(d FileDescriptor) Rule {
	ext, ok := d.Extension()
	if !ok {
		return c.table.Fallback()
	}
	return c.table.Match(ext)
}

// Table exposes the underlying match table.
func (c *Classifier) Table() *Table {
	return c.table
}
