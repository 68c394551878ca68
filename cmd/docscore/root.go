package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/docscore/config"
	"github.com/spacesedan/docscore/internal/analysis"
	"github.com/spacesedan/docscore/internal/textutil"
)

var (
	textFlag     string
	topicFlag    string
	backendFlag  string
	markdownFlag bool
	verboseFlag  bool
	cfg          config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docscore",
	Short: "Score Chinese documents for sentiment and topic relevance",
	Long: `docscore reads a document and answers two scores:

  sentiment  a value in [-1, 1], the length weighted average over segments
  relevance  an integer in [0, 10] against a target topic

Example usage:
  docscore analyze --text "民营经济持续健康发展。"
  cat report.md | docscore relevance --markdown --topic 科技创新
  docscore sentiment --backend remote < report.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&textFlag, "text", "t", "", "document text (default: read stdin)")
	rootCmd.PersistentFlags().StringVar(&topicFlag, "topic", "", "target topic (default: TARGET_TOPIC)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "sentiment backend: local, vader, openai or remote")
	rootCmd.PersistentFlags().BoolVar(&markdownFlag, "markdown", false, "treat input as markdown and score its plain text")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print the score breakdown")

	rootCmd.AddCommand(sentimentCmd, relevanceCmd, analyzeCmd, keywordsCmd, topicsCmd)
}

func initConfig() error {
	if backendFlag != "" {
		// Flags win over the environment; Load validates the value.
		if err := os.Setenv("SENTIMENT_BACKEND", backendFlag); err != nil {
			return err
		}
	}
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded
	return nil
}

// readInput returns --text when given, stdin otherwise, converted from markdown on
// request.
func readInput(cmd *cobra.Command) (string, error) {
	text := textFlag
	if text == "" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		text = string(raw)
	}
	if markdownFlag {
		text = textutil.ConvertMarkdownToText(text)
	}
	return strings.TrimSpace(text), nil
}

func newAnalyzer(withSentiment bool) (*analysis.Analyzer, error) {
	if withSentiment {
		return analysis.New(cfg)
	}
	return analysis.NewRelevanceOnly(cfg)
}
