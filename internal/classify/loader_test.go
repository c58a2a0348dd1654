package classify

import (
	"strings"
	"testing"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"
)

const validRulesYAML = `
version: "1.0"
set_name: test
rules:
  - name: executable
    priority: 100
    extensions: [exe, .BAT]
    verdict: DANGER
    human_verdict: "Can run programs."
    simple_explanation: "Runs code on open."
    solutions: ["Do not open it."]
    suggested_app: "None"
default:
  name: looks_safe
  verdict: SAFE
  human_verdict: "Looks safe."
  simple_explanation: "No execution risk."
  solutions: ["Open normally."]
  suggested_app: "Default app"
`

func TestParse_Valid(t *testing.T) {
	rs, err := Parse([]byte(validRulesYAML))
	if err != nil {
		t.Fatalf("failed to parse valid rules: %v", err)
	}
	if rs.SetName != "test" || len(rs.Rules) != 1 {
		t.Errorf("unexpected rule set: %+v", rs)
	}
	// Extensions are normalized on load
	if rs.Rules[0].Extensions[1] != "bat" {
		t.Errorf("expected .BAT normalized to bat, got %q", rs.Rules[0].Extensions[1])
	}
	if rs.Default == nil || rs.Default.Verdict != verdict.Safe {
		t.Errorf("expected SAFE default override, got %+v", rs.Default)
	}
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"missing version",
			`set_name: x
rules: []`,
			"version is required",
		},
		{
			"missing set name",
			`version: "1"
rules: []`,
			"set_name is required",
		},
		{
			"rule without name",
			`version: "1"
set_name: x
rules:
  - extensions: [exe]
    verdict: DANGER
    solutions: ["x"]`,
			"name is required",
		},
		{
			"invalid verdict",
			`version: "1"
set_name: x
rules:
  - name: r
    extensions: [exe]
    verdict: SCARY
    solutions: ["x"]`,
			"invalid verdict",
		},
		{
			"no extensions",
			`version: "1"
set_name: x
rules:
  - name: r
    extensions: []
    verdict: DANGER
    solutions: ["x"]`,
			"at least one extension",
		},
		{
			"no solutions",
			`version: "1"
set_name: x
rules:
  - name: r
    extensions: [exe]
    verdict: DANGER
    solutions: []`,
			"at least one solution",
		},
		{
			"duplicate extension across rules",
			`version: "1"
set_name: x
rules:
  - name: a
    priority: 2
    extensions: [exe]
    verdict: DANGER
    solutions: ["x"]
  - name: b
    priority: 1
    extensions: [EXE]
    verdict: CAUTION
    solutions: ["x"]`,
			"already claimed",
		},
		{
			"default with extensions",
			`version: "1"
set_name: x
rules: []
default:
  name: d
  extensions: [pdf]
  verdict: SAFE
  solutions: ["x"]`,
			"must not list extensions",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestBuildTable_DefaultOverride(t *testing.T) {
	rs, err := Parse([]byte(validRulesYAML))
	if err != nil {
		t.Fatal(err)
	}
	table := BuildTable(rs)
	if table.Fallback().HumanVerdict != "Looks safe." {
		t.Errorf("expected overridden fallback, got %q", table.Fallback().HumanVerdict)
	}

	rs.Default = nil
	table = BuildTable(rs)
	if table.Fallback().Name != DefaultRule.Name {
		t.Errorf("expected built-in fallback, got %q", table.Fallback().Name)
	}
}

func TestDefaultRules_AreValid(t *testing.T) {
	// The shipped defaults must satisfy the same integrity checks applied
	// to loaded files.
	rs := DefaultRules()
	seen := map[string]bool{}
	for _, rule := range rs.Rules {
		if !rule.Verdict.Valid() {
			t.Errorf("rule %q: invalid verdict", rule.Name)
		}
		if len(rule.Solutions) == 0 {
			t.Errorf("rule %q: no solutions", rule.Name)
		}
		for _, ext := range rule.Extensions {
			if seen[ext] {
				t.Errorf("extension %q appears in two rules", ext)
			}
			seen[ext] = true
		}
	}
}
