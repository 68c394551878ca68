package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/spacesedan/docscore/internal/models"
)

type printer struct {
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) Print(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
}

func (p *printer) Warning(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(p.out, "⚠ "+format+"\n", args...)
}

func (p *printer) Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(p.out, "✗ "+format+"\n", args...)
}

func (p *printer) Table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func printSentiment(p *printer, doc models.DocumentSentiment, verbose bool) {
	label := doc.Label
	if label == "" {
		label = "-"
	}
	p.Print("sentiment: %.4f (%s)", doc.Score, label)
	if doc.Skipped > 0 {
		p.Warning("%d segment(s) skipped", doc.Skipped)
	}
	if !verbose || len(doc.Segments) == 0 {
		return
	}

	rows := make([][]string, len(doc.Segments))
	for i, s := range doc.Segments {
		rows[i] = []string{
			fmt.Sprint(i),
			preview(s.Text, 24),
			s.Label,
			fmt.Sprintf("%.4f", s.Probability),
			fmt.Sprintf("%.4f", s.Signed),
			fmt.Sprintf("%.4f", s.Weight),
		}
	}
	p.Table([]string{"#", "Segment", "Label", "Probability", "Signed", "Weight"}, rows)
}

func printRelevance(p *printer, r models.RelevanceReport, verbose bool) {
	p.Print("relevance: %d", r.RelevanceScore)
	if r.RelevanceScore == 0 {
		p.Warning(zeroRelevanceHint)
	}
	if !verbose {
		return
	}

	rows := [][]string{
		{"direct", fmt.Sprintf("%.4f", r.Direct)},
		{"topic", fmt.Sprintf("%.4f", r.Topic)},
		{"raw", fmt.Sprintf("%.4f", r.Raw)},
		{"direct matches", strings.Join(r.DirectMatches, " ")},
		{"content fallback", fmt.Sprint(r.ContentFallback)},
		{"floor applied", fmt.Sprint(r.FloorApplied)},
		{"topic model", fmt.Sprint(r.TopicModelPresent)},
	}
	for i, words := range r.TopicKeywords {
		rows = append(rows, []string{fmt.Sprintf("topic %d", i), strings.Join(words, " ")})
	}
	p.Table([]string{"Component", "Value"}, rows)
}

// preview shortens s to at most n runes.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
