package sniff

// Mismatch severity levels.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Mismatch records a discrepancy between the format the filename claims
// and the format the byte signature was actually recognized as.
type Mismatch struct {
	Field    string `json:"field"`
	Claimed  string `json:"claimed"`
	Detected string `json:"detected"`
	Severity string `json:"severity"`
}

// executableSignatures are sniffed formats where a file disguised under a
// benign extension is treated as critical.
var executableSignatures = map[string]bool{
	"exe":   true,
	"elf":   true,
	"macho": true,
}

// formatAliases maps extension spellings to a canonical form so equivalent
// pairs (jpg/jpeg, htm/html) are not reported as mismatches.
var formatAliases = map[string]string{
	"jpeg": "jpg",
	"htm":  "html",
	"tif":  "tiff",
	"midi": "mid",
	"mpg":  "mpeg",
}

func canonical(ext string) string {
	if c, ok := formatAliases[ext]; ok {
		return c
	}
	return ext
}

// Compare returns mismatch records between the extension claimed by the
// file name (already lower-cased, empty when absent) and the detected
// signature of the head bytes. An unrecognized signature produces nothing:
// absence of evidence is not a discrepancy.
func Compare(claimedExt string, head []byte) []Mismatch {
	det := Detect(head)
	if !det.Known {
		return nil
	}

	if claimedExt == "" {
		return []Mismatch{{
			Field:    "extension",
			Claimed:  "",
			Detected: det.Extension,
			Severity: SeverityInfo,
		}}
	}

	if canonical(claimedExt) == canonical(det.Extension) {
		return nil
	}

	severity := SeverityWarning
	if executableSignatures[det.Extension] {
		severity = SeverityCritical
	}
	return []Mismatch{{
		Field:    "extension",
		Claimed:  claimedExt,
		Detected: det.Extension,
		Severity: severity,
	}}
}
