package classify

import "sort"

// Table holds rules sorted by priority (highest first) plus a fallback.
// Evaluation scans in fixed order; the first rule whose extension set
// contains the probed extension wins.
type Table struct {
	rules    []Rule
	fallback Rule
}

// NewTable creates a table from rules and a fallback rule. The input slice
// is not mutated.
func NewTable(rules []Rule, fallback Rule) *Table {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Table{
		rules:    sorted,
		fallback: fallback,
	}
}

// Match returns the first rule matching ext. An empty extension matches no
// rule; misses resolve to the fallback. Match never fails: the table backs
// the failure-fallback path and must not be a source of failures itself.
func (t *Table) Match(ext string) Rule {
	if ext != "" {
		for _, rule := range t.rules {
			for _, e := range rule.Extensions {
				if e == ext {
					return rule
				}
			}
		}
	}
	return t.fallback
}

// Rules returns the rules in evaluation order.
func (t *Table) Rules() []Rule {
	return t.rules
}

// Fallback returns the default rule applied when nothing matches.
func (t *Table) Fallback() Rule {
	return t.fallback
}
