package verdict

import (
	"encoding/json"
	"fmt"
)

// SchemaViolation reports a candidate result that is missing a required
// field, carries the wrong primitive kind, or uses a verdict outside the
// enum. It signals "discard this candidate, use the fallback path" and is
// never fatal to the process.
type SchemaViolation struct {
	Field  string
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation: field %q: %s", e.Field, e.Reason)
}

// InvariantViolation reports a candidate whose isDangerous flag disagrees
// with its verdict. Handled the same way as a SchemaViolation.
type InvariantViolation struct {
	Verdict     Verdict
	IsDangerous bool
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: isDangerous=%t but verdict=%s",
		e.IsDangerous, e.Verdict)
}

// Validate checks a candidate result against the canonical contract. It is
// the boundary that makes a remote analyzer's free-form output safe to treat
// as equivalent to a classifier result: any candidate failing here must be
// treated as a failure of the analyzer that produced it, never displayed.
func Validate(r *AnalysisResult) error {
	if r == nil {
		return &SchemaViolation{Field: "result", Reason: "is nil"}
	}
	if !r.Verdict.Valid() {
		return &SchemaViolation{Field: "verdict", Reason: fmt.Sprintf("unknown value %q", r.Verdict)}
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"humanVerdict", r.HumanVerdict},
		{"summary", r.Summary},
		{"simpleExplanation", r.SimpleExplanation},
		{"technicalDetails", r.TechnicalDetails},
		{"fileType", r.FileType},
	} {
		if f.value == "" {
			return &SchemaViolation{Field: f.name, Reason: "is required"}
		}
	}
	if len(r.Solutions) == 0 {
		return &SchemaViolation{Field: "solutions", Reason: "must be a non-empty list"}
	}
	for i, s := range r.Solutions {
		if s == "" {
			return &SchemaViolation{Field: "solutions", Reason: fmt.Sprintf("entry %d is empty", i)}
		}
	}
	if r.Metadata == nil {
		return &SchemaViolation{Field: "metadata", Reason: "is required"}
	}
	for _, key := range []string{MetaSuggestedApp, MetaSecurityLevel} {
		if _, ok := r.Metadata[key]; !ok {
			return &SchemaViolation{Field: "metadata." + key, Reason: "is required"}
		}
	}
	if r.IsDangerous != (r.Verdict == Danger) {
		return &InvariantViolation{Verdict: r.Verdict, IsDangerous: r.IsDangerous}
	}
	return nil
}

// FromJSON decodes a free-form candidate, typically a remote model's reply,
// and validates it. Malformed JSON and wrong primitive kinds surface as
// SchemaViolations so the caller's fallback policy can key off one error
// taxonomy.
func FromJSON(data []byte) (*AnalysisResult, error) {
	var r AnalysisResult
	if err := json.Unmarshal(data, &r); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, &SchemaViolation{Field: typeErr.Field, Reason: "has wrong type " + typeErr.Value}
		}
		return nil, &SchemaViolation{Field: "result", Reason: "not a JSON object: " + err.Error()}
	}
	if err := Validate(&r); err != nil {
		return nil, err
	}
	return &r, nil
}
