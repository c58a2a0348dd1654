package verdict

import (
	"errors"
	"testing"
)

func validResult() *AnalysisResult {
	return &AnalysisResult{
		Verdict:           Caution,
		HumanVerdict:      "This archive could be hiding other files.",
		Summary:           "Basic analysis of archive.zip",
		SimpleExplanation: "Anything can be packed inside an archive.",
		IsDangerous:       false,
		Solutions:         []string{"Preview the contents before extracting."},
		TechnicalDetails:  "Format: ZIP\nSize: 10.0 KB",
		FileType:          "zip",
		Metadata: map[string]any{
			MetaSuggestedApp:  "Archive manager",
			MetaSecurityLevel: LevelHighRisk,
		},
	}
}

func TestValidate_WellFormed(t *testing.T) {
	if err := Validate(validResult()); err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AnalysisResult)
	}{
		{"nil result", nil},
		{"empty humanVerdict", func(r *AnalysisResult) { r.HumanVerdict = "" }},
		{"empty summary", func(r *AnalysisResult) { r.Summary = "" }},
		{"empty simpleExplanation", func(r *AnalysisResult) { r.SimpleExplanation = "" }},
		{"empty technicalDetails", func(r *AnalysisResult) { r.TechnicalDetails = "" }},
		{"empty fileType", func(r *AnalysisResult) { r.FileType = "" }},
		{"empty solutions", func(r *AnalysisResult) { r.Solutions = nil }},
		{"blank solution entry", func(r *AnalysisResult) { r.Solutions = []string{"ok", ""} }},
		{"nil metadata", func(r *AnalysisResult) { r.Metadata = nil }},
		{"missing suggestedApp", func(r *AnalysisResult) { delete(r.Metadata, MetaSuggestedApp) }},
		{"missing securityLevel", func(r *AnalysisResult) { delete(r.Metadata, MetaSecurityLevel) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r *AnalysisResult
			if tc.mutate != nil {
				r = validResult()
				tc.mutate(r)
			}
			err := Validate(r)
			var sv *SchemaViolation
			if !errors.As(err, &sv) {
				t.Errorf("expected SchemaViolation, got %v", err)
			}
		})
	}
}

func TestValidate_UnknownVerdict(t *testing.T) {
	r := validResult()
	r.Verdict = Verdict("danger") // wrong case is wrong
	var sv *SchemaViolation
	if err := Validate(r); !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolation for lowercase verdict, got %v", err)
	}
}

func TestValidate_InvariantCoupling(t *testing.T) {
	r := validResult()
	r.Verdict = Danger
	r.IsDangerous = false
	var iv *InvariantViolation
	if err := Validate(r); !errors.As(err, &iv) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}

	r2 := validResult()
	r2.Verdict = Safe
	r2.IsDangerous = true
	if err := Validate(r2); !errors.As(err, &iv) {
		t.Fatalf("expected InvariantViolation for SAFE+dangerous, got %v", err)
	}
}

func TestFromJSON_WellFormed(t *testing.T) {
	data := []byte(`{
		"verdict": "DANGER",
		"humanVerdict": "This file can run programs on your computer.",
		"summary": "Deep analysis of setup.exe",
		"simpleExplanation": "It is a Windows installer.",
		"isDangerous": true,
		"whyItsDangerous": "Installers run arbitrary code.",
		"solutions": ["Verify the publisher first."],
		"technicalDetails": "Format: EXE\nSize: 1.9 MB",
		"fileType": "exe",
		"metadata": {"suggestedApp": "None", "securityLevel": "High Risk"}
	}`)
	r, err := FromJSON(data)
	if err != nil {
		t.Fatalf("expected valid candidate, got %v", err)
	}
	if r.Verdict != Danger || !r.IsDangerous {
		t.Errorf("decoded fields wrong: %+v", r)
	}
	if r.WhyItsDangerous == "" {
		t.Error("expected whyItsDangerous to survive decoding")
	}
}

func TestFromJSON_WrongPrimitiveKind(t *testing.T) {
	data := []byte(`{"verdict": "SAFE", "solutions": "not a list"}`)
	_, err := FromJSON(data)
	var sv *SchemaViolation
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolation for wrong kind, got %v", err)
	}
}

func TestFromJSON_NotAnObject(t *testing.T) {
	_, err := FromJSON([]byte(`"just a string"`))
	var sv *SchemaViolation
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolation for non-object, got %v", err)
	}
}

func TestFromJSON_InvariantRejection(t *testing.T) {
	data := []byte(`{
		"verdict": "DANGER",
		"humanVerdict": "h",
		"summary": "s",
		"simpleExplanation": "e",
		"isDangerous": false,
		"solutions": ["x"],
		"technicalDetails": "t",
		"fileType": "exe",
		"metadata": {"suggestedApp": "None", "securityLevel": "High Risk"}
	}`)
	_, err := FromJSON(data)
	var iv *InvariantViolation
	if !errors.As(err, &iv) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestSecurityLevel(t *testing.T) {
	if SecurityLevel(Safe) != LevelLowRisk {
		t.Error("SAFE should map to Low Risk")
	}
	if SecurityLevel(Caution) != LevelHighRisk {
		t.Error("CAUTION should map to High Risk")
	}
	if SecurityLevel(Danger) != LevelHighRisk {
		t.Error("DANGER should map to High Risk")
	}
}
