package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/sniff"
)

var (
	scanRulesFile string
	scanJSON      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Classify a single file and show the safety verdict",
	Long:  "Run the local heuristic engine on the given file and display the verdict, explanation, and recommended actions. Only the file's name, size, and leading bytes are read.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanRulesFile, "rules", "", "Path to rules YAML file (default: built-in rules)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the full result as JSON")
}

func loadRules(path string) (*classify.RuleSet, error) {
	if path == "" {
		return classify.DefaultRules(), nil
	}
	return classify.LoadFromFile(path)
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	rules, err := loadRules(scanRulesFile)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	classifier := classify.New(classify.BuildTable(rules))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	head, err := readHead(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	d := classify.FileDescriptor{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
	}
	result := classifier.Classify(d)
	ext, _ := d.Extension()
	mismatches := sniff.Compare(ext, head)

	if scanJSON {
		out, _ := json.MarshalIndent(struct {
			File       classify.FileDescriptor `json:"file"`
			Result     any                     `json:"result"`
			Mismatches []sniff.Mismatch        `json:"mismatches"`
		}{d, result, mismatches}, "", "  ")
		fmt.Fprintf(os.Stdout, "%s\n", out)
		return nil
	}

	fmt.Fprintf(os.Stderr, "\n=== File Safety Analysis ===\n\n")
	fmt.Fprintf(os.Stderr, "  File:    %s\n", d.Name)
	fmt.Fprintf(os.Stderr, "  Verdict: %s - %s\n", result.Verdict, result.HumanVerdict)
	fmt.Fprintf(os.Stderr, "\n  %s\n", result.SimpleExplanation)
	fmt.Fprintf(os.Stderr, "\n  What to do:\n")
	for i, sol := range result.Solutions {
		fmt.Fprintf(os.Stderr, "    %d. %s\n", i+1, sol)
	}
	fmt.Fprintf(os.Stderr, "\n  %s\n", indent(result.TechnicalDetails, "  "))
	for _, m := range mismatches {
		fmt.Fprintf(os.Stderr, "\n  [%s] name claims %q but content looks like %q\n",
			m.Severity, m.Claimed, m.Detected)
	}
	fmt.Fprintln(os.Stderr)

	return nil
}

// readHead returns up to sniff.HeadSize leading bytes of the file.
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, sniff.HeadSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return head[:n], nil
}

func indent(s, prefix string) string {
	out := ""
	for i, line := range splitLines(s) {
		if i > 0 {
			out += "\n" + prefix
		}
		out += line
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
