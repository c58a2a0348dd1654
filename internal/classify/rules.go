package classify

import "github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"

// Rule maps a set of file extensions to a verdict and the user-facing
// messaging shown alongside it.
type Rule struct {
	Name              string          `yaml:"name" json:"name"`
	Priority          int             `yaml:"priority" json:"priority"`
	Extensions        []string        `yaml:"extensions" json:"extensions"`
	Verdict           verdict.Verdict `yaml:"verdict" json:"verdict"`
	HumanVerdict      string          `yaml:"human_verdict" json:"human_verdict"`
	SimpleExplanation string          `yaml:"simple_explanation" json:"simple_explanation"`
	Solutions         []string        `yaml:"solutions" json:"solutions"`
	SuggestedApp      string          `yaml:"suggested_app" json:"suggested_app"`
}

// RuleSet is the top-level rule configuration loaded from YAML. The default
// rule has no extension set; it applies when nothing else matches and may be
// omitted, in which case the built-in SAFE default is used.
type RuleSet struct {
	Version string `yaml:"version" json:"version"`
	SetName string `yaml:"set_name" json:"set_name"`
	Rules   []Rule `yaml:"rules" json:"rules"`
	Default *Rule  `yaml:"default,omitempty" json:"default,omitempty"`
}
