// Package report prints per-review results and the page aggregate.
package report

import (
	"fmt"
	"io"

	"github.com/dtnitsch/review-sentiment/models"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatTable:
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown format %q (want text or table)", s)
}

type Reporter struct {
	w      io.Writer
	format Format
	title  string
}

// New returns a reporter writing to w. title is shown above the table
// layout and ignored by the text layout.
func New(w io.Writer, format Format, title string) *Reporter {
	return &Reporter{w: w, format: format, title: title}
}

// Reviews prints one entry per review in order.
func (r *Reporter) Reviews(scored []models.ScoredReview) error {
	if r.format == FormatTable {
		return r.reviewTable(scored)
	}

	for _, s := range scored {
		if !s.Result.IsScored() {
			if _, err := fmt.Fprintf(r.w, "Review #%d: not written in supported language. No analysis performed.\n\n", s.Index); err != nil {
				return err
			}
			continue
		}
		_, err := fmt.Fprintf(r.w, "Review #%d: \n\tPolarity: %.2f; %s\n\tSubjectivity: %.2f; %s\n\n",
			s.Index,
			s.Result.Polarity, paintPolarity(s.PolarityLabel),
			s.Result.Subjectivity, paintSubjectivity(s.SubjectivityLabel))
		if err != nil {
			return err
		}
	}
	return nil
}

// Aggregate prints the page summary.
func (r *Reporter) Aggregate(agg models.PageAggregate) error {
	if r.format == FormatTable {
		return r.aggregateTable(agg)
	}

	_, err := fmt.Fprintf(r.w, "\nPAGE TOTAL AGGREGATES:\n"+
		"\tThe average page values of %d reviews are:\n"+
		"\tAverage Polarity: %.4f\n"+
		"\tAverage Subjectivity: %.4f\n\n",
		agg.ValidCount, agg.AveragePolarity, agg.AverageSubjectivity)
	return err
}

func (r *Reporter) reviewTable(scored []models.ScoredReview) error {
	t := newTable(r.w)
	if r.title != "" {
		t.SetTitle(r.title)
	}
	t.AppendHeader(table.Row{"#", "Polarity", "Polarity Label", "Subjectivity", "Subjectivity Label", "Review"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, WidthMax: 60},
	})

	for _, s := range scored {
		if !s.Result.IsScored() {
			t.AppendRow(table.Row{s.Index, "-", unsupportedNote(s.Result), "-", "-", s.Text})
			continue
		}
		t.AppendRow(table.Row{
			s.Index,
			fmt.Sprintf("%.2f", s.Result.Polarity),
			paintPolarity(s.PolarityLabel),
			fmt.Sprintf("%.2f", s.Result.Subjectivity),
			paintSubjectivity(s.SubjectivityLabel),
			s.Text,
		})
	}
	t.Render()
	return nil
}

func (r *Reporter) aggregateTable(agg models.PageAggregate) error {
	t := newTable(r.w)
	t.SetTitle("PAGE TOTAL AGGREGATES")
	t.AppendHeader(table.Row{"Measure", "Sum", "Denominator", "Average"})
	t.AppendRow(table.Row{"Polarity", fmt.Sprintf("%.4f", agg.PolaritySum), agg.PolarityDenominator, fmt.Sprintf("%.4f", agg.AveragePolarity)})
	t.AppendRow(table.Row{"Subjectivity", fmt.Sprintf("%.4f", agg.SubjectivitySum), agg.SubjectivityDenominator, fmt.Sprintf("%.4f", agg.AverageSubjectivity)})
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d reviews", agg.TotalReviews),
		fmt.Sprintf("%d unsupported", agg.UnsupportedCount),
		fmt.Sprintf("%d valid", agg.ValidCount),
		string(agg.Mode),
	})
	t.Render()
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func unsupportedNote(r models.SentimentResult) string {
	if r.Reason == models.ReasonLanguage && r.Language != "" {
		return "unsupported (" + r.Language + ")"
	}
	return "unsupported (" + string(r.Reason) + ")"
}

var (
	strongPositive = color.New(color.FgGreen, color.Bold).SprintFunc()
	positive       = color.New(color.FgGreen).SprintFunc()
	negative       = color.New(color.FgRed).SprintFunc()
	strongNegative = color.New(color.FgRed, color.Bold).SprintFunc()
	subjective     = color.New(color.FgYellow).SprintFunc()
	objective      = color.New(color.FgCyan).SprintFunc()
)

func paintPolarity(l models.PolarityLabel) string {
	switch l {
	case models.PolarityVeryPositive:
		return strongPositive(string(l))
	case models.PolarityPositive:
		return positive(string(l))
	case models.PolarityNegative:
		return negative(string(l))
	case models.PolarityVeryNegative:
		return strongNegative(string(l))
	}
	return string(l)
}

func paintSubjectivity(l models.SubjectivityLabel) string {
	switch l {
	case models.SubjectivityHigh, models.SubjectivitySomewhat:
		return subjective(string(l))
	case models.SubjectivitySomewhatObjective, models.SubjectivityVeryObjective:
		return objective(string(l))
	}
	return string(l)
}
