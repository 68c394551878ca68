package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/docscore/internal/models"
)

func init() {
	color.NoColor = true
}

func resetFlags() {
	textFlag, topicFlag, backendFlag = "", "", ""
	markdownFlag, verboseFlag, listTopics = false, false, false
}

func TestReadInputPrefersTextFlag(t *testing.T) {
	defer resetFlags()
	textFlag = "  民营经济发展。 "

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("ignored"))
	got, err := readInput(cmd)
	require.NoError(t, err)
	assert.Equal(t, "民营经济发展。", got)
}

func TestReadInputFromStdinMarkdown(t *testing.T) {
	defer resetFlags()
	markdownFlag = true

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("# 标题\n\n**民营经济**持续[发展](https://example.com)。"))
	got, err := readInput(cmd)
	require.NoError(t, err)
	assert.Equal(t, "标题 民营经济持续发展。", got)
}

func TestPrintRelevanceZeroHint(t *testing.T) {
	var buf bytes.Buffer
	printRelevance(newPrinter(&buf), models.RelevanceReport{}, false)

	assert.Contains(t, buf.String(), "relevance: 0")
	assert.Contains(t, buf.String(), zeroRelevanceHint)
}

func TestPrintRelevanceVerbose(t *testing.T) {
	var buf bytes.Buffer
	printRelevance(newPrinter(&buf), models.RelevanceReport{
		RelevanceScore: 5,
		DirectMatches:  []string{"民营经济", "发展"},
		FloorApplied:   true,
		TopicKeywords:  [][]string{{"企业", "市场"}},
	}, true)

	out := buf.String()
	assert.Contains(t, out, "relevance: 5")
	assert.NotContains(t, out, zeroRelevanceHint)
	assert.Contains(t, out, "民营经济 发展")
	assert.Contains(t, out, "企业 市场")
}

func TestPrintSentimentEmptyLabel(t *testing.T) {
	var buf bytes.Buffer
	printSentiment(newPrinter(&buf), models.DocumentSentiment{}, true)
	assert.Equal(t, "sentiment: 0.0000 (-)\n", buf.String())
}

func TestTopicsListCommand(t *testing.T) {
	defer resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"topics", "--list"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute())
	out := buf.String()
	for _, name := range models.TopicNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "✓ 3 target topics")
}

func TestUnknownBackendIsReported(t *testing.T) {
	defer resetFlags()
	t.Setenv("SENTIMENT_BACKEND", "")
	rootCmd.SetArgs([]string{"sentiment", "--backend", "bert", "--text", "好。"})
	defer rootCmd.SetArgs(nil)

	err := Execute()
	assert.ErrorContains(t, err, "unknown sentiment backend")
}

func TestRunAlwaysEndsWithFinishedLine(t *testing.T) {
	defer resetFlags()
	t.Setenv("SENTIMENT_BACKEND", "")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"sentiment", "--backend", "bert", "--text", "好。"})
	defer rootCmd.SetArgs(nil)

	run(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[len(lines)-2], "unknown sentiment backend")
	assert.Equal(t, "✓ "+finishedLine, lines[len(lines)-1])
}

func TestRunFinishedLineAfterSuccess(t *testing.T) {
	defer resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"topics", "--list"})
	defer rootCmd.SetArgs(nil)

	run(&buf)

	assert.True(t, strings.HasSuffix(buf.String(), "✓ "+finishedLine+"\n"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "民营经济", preview("民营经济", 4))
	assert.Equal(t, "民营…", preview("民营经济", 2))
}
