package cmd

import "github.com/spf13/cobra"

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "omnianalyzer",
	Short: "OmniAnalyzer: plain-language file safety analysis",
	Long: `OmniAnalyzer tells you whether a file is safe to open.
It classifies files with a local heuristic engine (an extension rule table
backed by magic-byte signature checks) and, when an Ollama server is
reachable, asks a model for a deeper content-aware analysis. The local
engine is the guaranteed fallback: it always answers, even when the remote
analyzer is absent or misbehaves.`,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("omnianalyzer v%s\n", Version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
