package verdict

// Verdict is the coarse safety classification for a file.
type Verdict string

const (
	Safe    Verdict = "SAFE"
	Caution Verdict = "CAUTION"
	Danger  Verdict = "DANGER"
)

// Valid reports whether v is one of the three known verdicts.
// Comparison is case-sensitive.
func (v Verdict) Valid() bool {
	switch v {
	case Safe, Caution, Danger:
		return true
	default:
		return false
	}
}

// Required metadata keys on every result.
const (
	MetaSuggestedApp  = "suggestedApp"
	MetaSecurityLevel = "securityLevel"
)

// Coarse security level labels derived from the verdict.
const (
	LevelLowRisk  = "Low Risk"
	LevelHighRisk = "High Risk"
)

// SecurityLevel returns the coarse label for v: "Low Risk" for SAFE,
// "High Risk" for everything else.
func SecurityLevel(v Verdict) string {
	if v == Safe {
		return LevelLowRisk
	}
	return LevelHighRisk
}

// AnalysisResult is the canonical shape of an analysis outcome. Every
// analysis path, local classifier or remote analyzer, produces this
// shape, so downstream consumers (display, history, chat seeding) never
// branch on which path produced a result. A result is immutable once built.
type AnalysisResult struct {
	Verdict           Verdict        `json:"verdict"`
	HumanVerdict      string         `json:"humanVerdict"`
	Summary           string         `json:"summary"`
	SimpleExplanation string         `json:"simpleExplanation"`
	IsDangerous       bool           `json:"isDangerous"`
	WhyItsDangerous   string         `json:"whyItsDangerous,omitempty"`
	Solutions         []string       `json:"solutions"`
	TechnicalDetails  string         `json:"technicalDetails"`
	FileType          string         `json:"fileType"`
	Metadata          map[string]any `json:"metadata"`
}
