package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/docscore/internal/models"
)

const zeroRelevanceHint = "relevance is 0: the text may be unrelated to the topic, too short, or tokenized poorly"

var sentimentCmd = &cobra.Command{
	Use:   "sentiment",
	Short: "Score document sentiment in [-1, 1]",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		a, err := newAnalyzer(true)
		if err != nil {
			return err
		}
		defer a.Close()

		p := newPrinter(cmd.OutOrStdout())
		doc, err := a.Sentiment(cmd.Context(), text)
		if err != nil {
			p.Error("sentiment: %v", err)
			return nil
		}
		printSentiment(p, doc, verboseFlag)
		p.Success("sentiment analysis finished (backend %s)", cfg.SentimentBackend)
		return nil
	},
}

var relevanceCmd = &cobra.Command{
	Use:   "relevance",
	Short: "Score topic relevance in [0, 10]",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		a, err := newAnalyzer(false)
		if err != nil {
			return err
		}
		defer a.Close()

		p := newPrinter(cmd.OutOrStdout())
		printRelevance(p, a.Relevance(text, topicFlag), verboseFlag)
		p.Success("relevance analysis finished (topic %s)", resolvedTopic())
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score both sentiment and topic relevance",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		a, err := newAnalyzer(true)
		if err != nil {
			return err
		}
		defer a.Close()

		p := newPrinter(cmd.OutOrStdout())
		report := a.Analyze(cmd.Context(), text, topicFlag)
		if report.Sentiment != nil {
			printSentiment(p, *report.Sentiment, verboseFlag)
		}
		printRelevance(p, report.Relevance, verboseFlag)
		for _, msg := range report.Errors {
			p.Warning("%s", msg)
		}
		p.Success("analysis finished")
		return nil
	},
}

var keywordsTopK int

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show the fused keyword ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		a, err := newAnalyzer(false)
		if err != nil {
			return err
		}
		defer a.Close()

		p := newPrinter(cmd.OutOrStdout())
		scores := a.Keywords(text, keywordsTopK)
		rows := make([][]string, len(scores))
		for i, s := range scores {
			rows[i] = []string{fmt.Sprint(i + 1), s.Keyword, fmt.Sprintf("%.6f", s.Weight)}
		}
		p.Table([]string{"#", "Keyword", "Weight"}, rows)
		p.Success("%d keywords extracted", len(scores))
		return nil
	},
}

var listTopics bool

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show latent topics of the text, or the built-in target topics with --list",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd.OutOrStdout())
		if listTopics {
			printTargetTopics(p)
			return nil
		}

		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		a, err := newAnalyzer(false)
		if err != nil {
			return err
		}
		defer a.Close()

		topics := a.Topics(text)
		if len(topics) == 0 {
			p.Warning("no topic model could be fitted for this text")
		}
		rows := make([][]string, len(topics))
		for i, words := range topics {
			rows[i] = []string{fmt.Sprint(i), strings.Join(words, " ")}
		}
		p.Table([]string{"Topic", "Top words"}, rows)
		p.Success("%d topics fitted", len(topics))
		return nil
	},
}

func init() {
	keywordsCmd.Flags().IntVarP(&keywordsTopK, "top", "n", 0, "number of keywords (default: KEYWORD_TOP_K)")
	topicsCmd.Flags().BoolVar(&listTopics, "list", false, "list the built-in target topics")
}

func resolvedTopic() string {
	if topicFlag != "" {
		return topicFlag
	}
	return cfg.TargetTopic
}

func printTargetTopics(p *printer) {
	rows := [][]string{}
	for _, name := range models.TopicNames() {
		set, _ := models.LookupTopic(name)
		rows = append(rows, []string{name, strings.Join(set.Keywords, " ")})
	}
	p.Table([]string{"Topic", "Keywords"}, rows)
	p.Print("key phrases (all topics): %s", strings.Join(models.KeyPhrases(), " "))
	p.Print("floor terms (all topics): %s + %s", models.FloorPrimary, models.FloorSecondary)
	p.Success("%d target topics", len(rows))
}
