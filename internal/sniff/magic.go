// Package sniff probes file heads with magic-number matching and reports
// discrepancies between what a filename claims and what the bytes actually
// are. Sniffing is supporting detail only: it travels on analysis reports
// and audit trails but never changes the classifier's verdict, which stays
// a pure function of the descriptor.
package sniff

import "github.com/h2non/filetype"

// HeadSize is how many leading bytes callers should hand to Detect. Magic
// matchers need far less, but the same head doubles as the remote
// analyzer's content preview.
const HeadSize = 8192

// Detection is the outcome of magic-byte probing.
type Detection struct {
	Known     bool   `json:"known"`
	Extension string `json:"extension,omitempty"`
	MIME      string `json:"mime,omitempty"`
}

// Detect probes the first bytes of a file. An empty or unrecognized head
// yields an unknown detection, never an error.
func Detect(head []byte) Detection {
	if len(head) == 0 {
		return Detection{}
	}
	t, err := filetype.Match(head)
	if err != nil || t == filetype.Unknown {
		return Detection{}
	}
	return Detection{
		Known:     true,
		Extension: t.Extension,
		MIME:      t.MIME.Value,
	}
}
