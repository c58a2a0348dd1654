package sniff

import "testing"

var (
	pngHead = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	exeHead = []byte{0x4D, 0x5A, 0x90, 0x00, 0x03, 0x00, 0x00, 0x00}
	jpgHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}
	pdfHead = []byte("%PDF-1.7\n%")
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		ext  string
	}{
		{"png", pngHead, "png"},
		{"windows executable", exeHead, "exe"},
		{"jpeg", jpgHead, "jpg"},
		{"pdf", pdfHead, "pdf"},
	}
	for _, tc := range tests {
		det := Detect(tc.head)
		if !det.Known {
			t.Errorf("%s: expected a known detection", tc.name)
			continue
		}
		if det.Extension != tc.ext {
			t.Errorf("%s: expected extension %q, got %q", tc.name, tc.ext, det.Extension)
		}
		if det.MIME == "" {
			t.Errorf("%s: expected a MIME value", tc.name)
		}
	}
}

func TestDetect_Unknown(t *testing.T) {
	for _, head := range [][]byte{nil, {}, []byte("just some plain text")} {
		if det := Detect(head); det.Known {
			t.Errorf("expected unknown detection for %q, got %+v", head, det)
		}
	}
}

func TestCompare_Agreement(t *testing.T) {
	if m := Compare("png", pngHead); m != nil {
		t.Errorf("matching claim should produce no mismatches, got %v", m)
	}
}

func TestCompare_Aliases(t *testing.T) {
	// jpeg vs jpg is the same format under two spellings.
	if m := Compare("jpeg", jpgHead); m != nil {
		t.Errorf("alias extensions should not mismatch, got %v", m)
	}
}

func TestCompare_DisguisedExecutable(t *testing.T) {
	m := Compare("pdf", exeHead)
	if len(m) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(m))
	}
	if m[0].Severity != SeverityCritical {
		t.Errorf("executable behind a benign extension should be critical, got %s", m[0].Severity)
	}
	if m[0].Claimed != "pdf" || m[0].Detected != "exe" {
		t.Errorf("unexpected mismatch record: %+v", m[0])
	}
}

func TestCompare_OrdinaryMismatch(t *testing.T) {
	m := Compare("pdf", pngHead)
	if len(m) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(m))
	}
	if m[0].Severity != SeverityWarning {
		t.Errorf("non-executable mismatch should be warning, got %s", m[0].Severity)
	}
}

func TestCompare_NoClaimedExtension(t *testing.T) {
	m := Compare("", pngHead)
	if len(m) != 1 || m[0].Severity != SeverityInfo {
		t.Errorf("recognized content on an extensionless name should be info, got %v", m)
	}
}

func TestCompare_UnknownSignature(t *testing.T) {
	// Absence of evidence is not a discrepancy.
	if m := Compare("pdf", []byte("plain text body")); m != nil {
		t.Errorf("unknown signature should produce no mismatches, got %v", m)
	}
}
