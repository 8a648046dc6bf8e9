// Package history implements the history and show commands.
package history

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dtnitsch/review-sentiment/internal/common"
	"github.com/dtnitsch/review-sentiment/models"
	dbpkg "github.com/dtnitsch/review-sentiment/pkg/db"
	"github.com/dtnitsch/review-sentiment/pkg/mapreduce"
	"github.com/dtnitsch/review-sentiment/pkg/report"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

const timeLayout = "2006-01-02 15:04:05"

func HistoryAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(err)
	}
	database, err := common.OpenHistory(c, cfg)
	if err != nil {
		return common.Fail(err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Created", "Reviews", "Valid", "Avg Polarity", "Avg Subjectivity", "Mode", "Title", "Exported"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID,
			r.CreatedAt.Local().Format(timeLayout),
			r.TotalReviews,
			r.ValidCount,
			formatAverage(r.AveragePolarity.Float64, r.AveragePolarity.Valid),
			formatAverage(r.AverageSubjectivity.Float64, r.AverageSubjectivity.Valid),
			r.Mode,
			titleOrURL(r.Title, r.URL),
			r.ExportedTo,
		})
	}
	t.Render()

	fmt.Fprintf(out, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(out, "\nTip: Use 'review-sentiment show <id>' to see a run's reviews\n")
	return nil
}

// ShowAction prints a stored run with the same report layout as analyze.
// The aggregate is recomputed from the stored reviews.
func ShowAction(c *cli.Context) error {
	if !c.Args().Present() {
		return common.Fail(models.NewAnalysisError(models.KindInvalidInput, "show needs a run ID", nil))
	}
	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return common.Fail(models.NewAnalysisError(models.KindInvalidInput, "run ID must be a number", err))
	}

	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return common.Fail(models.NewAnalysisError(models.KindConfigInvalid, "bad --format", err))
	}

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(err)
	}
	database, err := common.OpenHistory(c, cfg)
	if err != nil {
		return common.Fail(err)
	}
	defer database.Close()

	run, err := database.GetRun(runID)
	if errors.Is(err, dbpkg.ErrRunNotFound) {
		return cli.Exit(fmt.Sprintf("Error: run %d not found", runID), 1)
	}
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Run %d  %s\n", run.RunID, run.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(out, "URL: %s\n", run.URL)
	if run.Title != "" {
		fmt.Fprintf(out, "Title: %s\n", run.Title)
	}
	if run.ExportedTo != "" {
		fmt.Fprintf(out, "Exported to: %s\n", run.ExportedTo)
	}
	fmt.Fprintln(out)

	reporter := report.New(out, format, run.Title)
	if err := reporter.Reviews(run.Reviews); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	agg, err := mapreduce.Reduce(run.Reviews, run.Aggregate.Mode)
	if err != nil {
		fmt.Fprintf(out, "No page aggregate: %v\n", err)
		return nil
	}
	return reporter.Aggregate(agg)
}

func formatAverage(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func titleOrURL(title, url string) string {
	s := title
	if s == "" {
		s = url
	}
	if len([]rune(s)) > 48 {
		s = string([]rune(s)[:47]) + "…"
	}
	return s
}
