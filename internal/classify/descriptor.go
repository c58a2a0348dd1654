package classify

import "strings"

// FileDescriptor is the caller-owned view of a submitted file. Name and
// size are the only two things the engine reads from a file handle; byte
// streaming and MIME sniffing belong to collaborators.
type FileDescriptor struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

// Extension returns the lower-cased suffix after the last dot in the name
// and whether one exists. Only the final suffix counts: "payload.exe.zip"
// yields "zip". A name without a dot, or with nothing after the last dot,
// has no extension.
func (d FileDescriptor) Extension() (string, bool) {
	idx := strings.LastIndexByte(d.Name, '.')
	if idx < 0 || idx == len(d.Name)-1 {
		return "", false
	}
	return strings.ToLower(d.Name[idx+1:]), true
}
