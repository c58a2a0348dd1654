package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/analysis"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/audit"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/history"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/remote"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/server"
)

var (
	serveRulesFile string
	listenAddr     string
	auditFile      string
	ollamaHost     string
	ollamaModel    string
	remoteTimeout  time.Duration
	noRemote       bool
	noHistory      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the OmniAnalyzer HTTP API",
	Long:  "Start the HTTP API that accepts file uploads, returns safety analyses, and hosts the interactive chat. Falls back to the local engine whenever the remote analyzer is unavailable.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveRulesFile, "rules", "", "Path to rules YAML file (default: built-in rules)")
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "Address to listen on")
	serveCmd.Flags().StringVar(&auditFile, "audit-log", "", "Path to audit log file (default: stderr)")
	serveCmd.Flags().StringVar(&ollamaHost, "ollama-host", "", "Ollama server URL (default: $OLLAMA_HOST or "+remote.DefaultHost+")")
	serveCmd.Flags().StringVar(&ollamaModel, "model", "", "Model for deep analysis (default: $OLLAMA_MODEL or "+remote.DefaultModel+")")
	serveCmd.Flags().DurationVar(&remoteTimeout, "remote-timeout", analysis.DefaultRemoteTimeout, "Timeout per remote analysis call")
	serveCmd.Flags().BoolVar(&noRemote, "no-remote", false, "Disable the remote analyzer, local engine only")
	serveCmd.Flags().BoolVar(&noHistory, "no-history", false, "Disable the history/stats endpoints")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("component", "omnianalyzer").Logger()

	rules, err := loadRules(serveRulesFile)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	classifier := classify.New(classify.BuildTable(rules))
	logger.Info().
		Str("rules", rules.SetName).
		Str("version", rules.Version).
		Int("rule_count", len(rules.Rules)).
		Msg("rules loaded")

	var auditLogger *audit.Logger
	if auditFile != "" {
		auditLogger, err = audit.NewFileLogger(auditFile)
		if err != nil {
			return fmt.Errorf("creating audit logger: %w", err)
		}
		logger.Info().Str("path", auditFile).Msg("audit log enabled")
	} else {
		auditLogger = audit.NewStderrLogger()
	}

	// The remote analyzer is an optional capability: with --no-remote the
	// pipeline runs local-only.
	var analyzer remote.Analyzer
	var modelName string
	if !noRemote {
		oa, err := remote.NewOllamaAnalyzer(ollamaHost, ollamaModel)
		if err != nil {
			return fmt.Errorf("configuring remote analyzer: %w", err)
		}
		analyzer = oa
		modelName = oa.Model()
		logger.Info().Str("model", modelName).Msg("remote analyzer configured")
	} else {
		logger.Info().Msg("remote analyzer disabled, local engine only")
	}

	pipe := analysis.New(classifier, analyzer, auditLogger)
	pipe.SetRemoteTimeout(remoteTimeout)

	api := server.New(pipe, logger)
	var handler http.Handler = api.Handler()

	if !noHistory {
		hub := history.NewHub(rules)
		pipe.AddObserver(hub.OnEvent)
		history.Run(context.Background(), hub)

		histHandler := history.Handler(hub)
		apiHandler := handler
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/_omnianalyzer") {
				histHandler.ServeHTTP(w, r)
				return
			}
			apiHandler.ServeHTTP(w, r)
		})
	}

	logger.Info().
		Str("listen", listenAddr).
		Bool("remote", !noRemote).
		Msg("starting omnianalyzer")

	fmt.Fprintf(os.Stderr, "\n  OmniAnalyzer v%s\n", Version)
	fmt.Fprintf(os.Stderr, "  Rules:  %s (%s)\n", rules.SetName, rules.Version)
	fmt.Fprintf(os.Stderr, "  Listen: %s\n", listenAddr)
	if noRemote {
		fmt.Fprintf(os.Stderr, "  Remote: disabled\n")
	} else {
		fmt.Fprintf(os.Stderr, "  Remote: ollama (%s)\n", modelName)
	}
	if !noHistory {
		histAddr := listenAddr
		if strings.HasPrefix(histAddr, ":") {
			histAddr = "localhost" + histAddr
		}
		fmt.Fprintf(os.Stderr, "  History: http://%s/_omnianalyzer/api/stats\n", histAddr)
	}
	fmt.Fprintln(os.Stderr)

	return http.ListenAndServe(listenAddr, handler)
}
