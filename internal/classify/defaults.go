package classify

import "github.com/Tarunjit45/OmniAnalyzer-AI/internal/verdict"

// DefaultRule is the built-in catch-all: anything without a matching rule,
// including files with no extension at all, is treated as SAFE.
var DefaultRule = Rule{
	Name:         "looks_safe",
	Verdict:      verdict.Safe,
	HumanVerdict: "This file looks safe.",
	SimpleExplanation: "Nothing about this file type suggests it can run code or " +
		"change your system on its own.",
	Solutions: []string{
		"Open it with its usual application.",
		"If it came from someone you don't know, double-check the sender first.",
	},
	SuggestedApp: "System default application",
}

// DefaultRules returns the built-in rule set. Rules are data, not control
// flow: new extensions or verdicts are added here (or in a YAML rule file)
// without touching the matching algorithm.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Version: "1.0",
		SetName: "builtin",
		Rules: []Rule{
			{
				Name:         "executable",
				Priority:     100,
				Extensions:   []string{"exe", "msi", "bat", "sh", "cmd", "vbs"},
				Verdict:      verdict.Danger,
				HumanVerdict: "This file can run programs on your computer.",
				SimpleExplanation: "Executable files can install software or change " +
					"your system the moment they are opened. Only run one when you " +
					"are certain where it came from.",
				Solutions: []string{
					"Do not open the file unless you asked for it from a source you trust.",
					"Verify the sender or the download page before running anything.",
					"Delete the file if you were not expecting it.",
				},
				SuggestedApp: "None - do not open directly",
			},
			{
				Name:         "archive",
				Priority:     90,
				Extensions:   []string{"zip", "rar", "7z"},
				Verdict:      verdict.Caution,
				HumanVerdict: "This archive could be hiding other files.",
				SimpleExplanation: "Compressed archives are harmless by themselves, " +
					"but anything can be packed inside them, including programs.",
				Solutions: []string{
					"Preview the contents with an archive manager before extracting.",
					"Check the extracted files before opening any of them.",
				},
				SuggestedApp: "Archive manager",
			},
			{
				Name:         "active_web_content",
				Priority:     80,
				Extensions:   []string{"html", "htm", "js", "svg"},
				Verdict:      verdict.Caution,
				HumanVerdict: "This file can run scripts when opened in a browser.",
				SimpleExplanation: "Web pages and scripts can load remote content or " +
					"execute code as soon as a browser opens them.",
				Solutions: []string{
					"Open it in a text editor first to see what it contains.",
					"Avoid double-clicking it if it arrived unexpectedly.",
				},
				SuggestedApp: "Text editor",
			},
		},
	}
}
