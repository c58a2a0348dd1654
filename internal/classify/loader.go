package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a rule set from a YAML file.
func LoadFromFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML bytes into a RuleSet.
func Parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing rules YAML: %w", err)
	}
	if err := validate(&rs); err != nil {
		return nil, fmt.Errorf("validating rules: %w", err)
	}
	return &rs, nil
}

// validate checks rule set integrity. Extensions are normalized in place
// (lower-cased, leading dot stripped) and must map to exactly one rule;
// an extension appearing in two rules would make the outcome ambiguous.
func validate(rs *RuleSet) error {
	if rs.Version == "" {
		return fmt.Errorf("version is required")
	}
	if rs.SetName == "" {
		return fmt.Errorf("set_name is required")
	}

	seen := make(map[string]string)
	for i := range rs.Rules {
		rule := &rs.Rules[i]
		if rule.Name == "" {
			return fmt.Errorf("rule %d: name is required", i)
		}
		if !rule.Verdict.Valid() {
			return fmt.Errorf("rule %q: invalid verdict %q", rule.Name, rule.Verdict)
		}
		if len(rule.Extensions) == 0 {
			return fmt.Errorf("rule %q: at least one extension is required", rule.Name)
		}
		if len(rule.Solutions) == 0 {
			return fmt.Errorf("rule %q: at least one solution is required", rule.Name)
		}
		for j, ext := range rule.Extensions {
			norm := strings.ToLower(strings.TrimPrefix(ext, "."))
			if norm == "" {
				return fmt.Errorf("rule %q: extension %d is empty", rule.Name, j)
			}
			if owner, dup := seen[norm]; dup {
				return fmt.Errorf("rule %q: extension %q already claimed by rule %q",
					rule.Name, norm, owner)
			}
			seen[norm] = rule.Name
			rule.Extensions[j] = norm
		}
	}

	if rs.Default != nil {
		if !rs.Default.Verdict.Valid() {
			return fmt.Errorf("default rule: invalid verdict %q", rs.Default.Verdict)
		}
		if len(rs.Default.Solutions) == 0 {
			return fmt.Errorf("default rule: at least one solution is required")
		}
		if len(rs.Default.Extensions) != 0 {
			return fmt.Errorf("default rule: must not list extensions")
		}
	}

	return nil
}

// BuildTable creates the match table from a loaded rule set, filling in the
// built-in default when the set doesn't override it.
func BuildTable(rs *RuleSet) *Table {
	fallback := DefaultRule
	if rs.Default != nil {
		fallback = *rs.Default
	}
	return NewTable(rs.Rules, fallback)
}
