package analyze

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/review-sentiment/internal/common"
	"github.com/dtnitsch/review-sentiment/models"
	"github.com/dtnitsch/review-sentiment/pkg/db"
	"github.com/dtnitsch/review-sentiment/pkg/extractor"
	"github.com/dtnitsch/review-sentiment/pkg/parser"
	"github.com/dtnitsch/review-sentiment/pkg/prompt"
	"github.com/dtnitsch/review-sentiment/pkg/sentiment"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/xuri/excelize/v2"
)

func init() {
	color.NoColor = true
}

const reviewClass = "a-row a-spacing-small review-data"

func reviewPage(reviews ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Blender</title></head><body>`)
	b.WriteString(`<span id="productTitle"> Kitchen Blender 3000 </span>`)
	for _, r := range reviews {
		fmt.Fprintf(&b, "<div class=%q>\n<span>%s</span>\n</div>\n", reviewClass, r)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func pageServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testRun struct {
	stdout string
	stderr string
	err    error
}

// runApp runs the analyze command with injected stdin and no os.Exit.
func runApp(t *testing.T, stdin string, args ...string) testRun {
	t.Helper()
	var out, errOut bytes.Buffer
	app := &cli.App{
		Name:      "review-sentiment",
		Flags:     common.GlobalFlags(),
		Reader:    strings.NewReader(stdin),
		Writer:    &out,
		ErrWriter: &errOut,
		Commands: []*cli.Command{
			{Name: "analyze", Flags: Flags(), Action: AnalyzeAction},
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	err := app.RunContext(context.Background(), append([]string{"review-sentiment"}, args...))
	return testRun{stdout: out.String(), stderr: errOut.String(), err: err}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.True(t, errors.As(err, &coder), "want an exit error, got %v", err)
	return coder.ExitCode()
}

func TestAnalyzeActionReportsAndRecords(t *testing.T) {
	srv := pageServer(t, reviewPage("Good blender", "An excellent purchase", "The box arrived on Tuesday"))
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")

	res := runApp(t, "",
		"--config", "", "--db", dbPath,
		"analyze", "--url", srv.URL, "--no-export", "--no-language-detection")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "Review #1: \n\tPolarity: 0.70; VERY POSITIVE\n\tSubjectivity: 0.60; Somewhat Subjective\n\n")
	assert.Contains(t, res.stdout, "Review #2: \n\tPolarity: 1.00; VERY POSITIVE\n\tSubjectivity: 1.00; HIGHLY SUBJECTIVE\n\n")
	assert.Contains(t, res.stdout, "Review #3: not written in supported language. No analysis performed.\n\n")
	assert.Contains(t, res.stdout, "\tThe average page values of 2 reviews are:\n\tAverage Polarity: 0.8500\n\tAverage Subjectivity: 1.6000\n")
	assert.NotContains(t, res.stdout, "File created.")

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	runs, err := database.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Kitchen Blender 3000", runs[0].Title)
	assert.Equal(t, 3, runs[0].TotalReviews)
	assert.Equal(t, 1, runs[0].UnsupportedCount)
	assert.InDelta(t, 0.85, runs[0].AveragePolarity.Float64, 1e-9)
}

func TestAnalyzeActionMeanAveraging(t *testing.T) {
	srv := pageServer(t, reviewPage("Good blender", "An excellent purchase"))

	res := runApp(t, "",
		"--config", "",
		"analyze", "--url", srv.URL, "--no-export", "--no-history",
		"--no-language-detection", "--averaging", "mean")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Average Subjectivity: 0.8000")
}

func TestAnalyzeActionPromptsAndExports(t *testing.T) {
	srv := pageServer(t, reviewPage("Good blender", "Bad lid", "Great motor"))
	out := filepath.Join(t.TempDir(), "scores.xlsx")

	res := runApp(t, srv.URL+"\nmaybe\nY\n",
		"--config", "",
		"analyze", "--no-history", "--no-language-detection", "--output", out)
	require.NoError(t, res.err, res.stderr)

	assert.True(t, strings.HasPrefix(res.stdout, prompt.URLQuestion))
	assert.Contains(t, res.stdout, prompt.ExportQuestion)
	assert.Contains(t, res.stdout, "Invalid Input: "+prompt.ExportQuestion)
	assert.Contains(t, res.stdout, "File created.")
	assert.FileExists(t, out)
}

func TestAnalyzeActionAggregateUndefined(t *testing.T) {
	srv := pageServer(t, reviewPage("Good blender"))
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	res := runApp(t, "",
		"--config", "", "--db", dbPath,
		"analyze", "--url", srv.URL, "--export", "--no-language-detection")
	require.Error(t, res.err)
	assert.Equal(t, 1, exitCode(t, res.err))
	assert.Contains(t, res.err.Error(), string(models.KindAggregationUndefined))

	// The review is still printed and the run still recorded.
	assert.Contains(t, res.stdout, "Review #1: ")
	assert.NotContains(t, res.stdout, "PAGE TOTAL AGGREGATES")
	assert.NotContains(t, res.stdout, "File created.")

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()
	runs, err := database.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].AggregateError)
	assert.False(t, runs[0].AveragePolarity.Valid)
}

func TestAnalyzeActionErrors(t *testing.T) {
	empty := pageServer(t, `<html><body><p>nothing here</p></body></html>`)
	missing := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(missing.Close)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "no reviews",
			args:     []string{"--url", empty.URL},
			wantCode: 1,
			wantMsg:  string(models.KindNoReviewsFound),
		},
		{
			name:     "not found",
			args:     []string{"--url", missing.URL},
			wantCode: 1,
			wantMsg:  "status code: 404",
		},
		{
			name:     "bad url",
			args:     []string{"--url", "ftp://example.com/x"},
			wantCode: 1,
			wantMsg:  string(models.KindInvalidInput),
		},
		{
			name:     "bad averaging",
			args:     []string{"--url", empty.URL, "--averaging", "median"},
			wantCode: 2,
			wantMsg:  string(models.KindConfigInvalid),
		},
		{
			name:     "bad format",
			args:     []string{"--url", empty.URL, "--format", "csv"},
			wantCode: 2,
			wantMsg:  string(models.KindConfigInvalid),
		},
		{
			name:     "export flags conflict",
			args:     []string{"--url", empty.URL, "--export", "--no-export"},
			wantCode: 2,
			wantMsg:  "exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", "", "analyze", "--no-history", "--no-language-detection"}, tt.args...)
			res := runApp(t, "", args...)
			require.Error(t, res.err)
			assert.Equal(t, tt.wantCode, exitCode(t, res.err))
			assert.Contains(t, res.err.Error(), tt.wantMsg)
		})
	}
}

func TestAnalyzeActionKeepWhitespaceLines(t *testing.T) {
	srv := pageServer(t, `<html><body><div class="a-row a-spacing-small review-data">Good blender
   
Great motor
</div></body></html>`)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("averaging: mean\nextract:\n  keep_whitespace_lines: true\n"), 0o644))
	out := filepath.Join(dir, "scores.xlsx")

	res := runApp(t, "",
		"--config", cfgPath,
		"analyze", "--url", srv.URL, "--export", "--output", out, "--no-history", "--no-language-detection")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "Review #2: not written in supported language. No analysis performed.\n\n")
	assert.Contains(t, res.stdout, "Review #3: \n\tPolarity: 0.80")
	assert.Contains(t, res.stdout, "The average page values of 2 reviews are:")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("SHEET_TITLE")
	require.NoError(t, err)
	// Header plus one row per line, the blank one included.
	assert.Len(t, rows, 4)
}

type stubSource struct {
	html string
	err  error
}

func (s stubSource) GetHtml(_ context.Context, _ string) (*goquery.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(s.html))
}

func newTestPipeline(t *testing.T, src PageSource, mode models.AveragingMode) *Pipeline {
	t.Helper()
	lex, err := sentiment.DefaultLexicon()
	require.NoError(t, err)
	return &Pipeline{
		Source:    src,
		Parser:    &parser.Parser{},
		Extractor: extractor.New("div", reviewClass),
		Scorer:    sentiment.NewAnalyzer(lex),
		Mode:      mode,
	}
}

func TestPipelineRun(t *testing.T) {
	p := newTestPipeline(t, stubSource{html: reviewPage("Good blender", "Terrible lid", "Great motor")}, models.AveragingMean)

	out, err := p.Run(context.Background(), "https://example.com/dp/1")
	require.NoError(t, err)
	require.NoError(t, out.AggregateErr)

	assert.Equal(t, "Kitchen Blender 3000", out.Meta.Title)
	require.Len(t, out.Reviews, 3)
	assert.Equal(t, models.PolarityVeryNegative, out.Reviews[1].PolarityLabel)
	assert.Equal(t, 3, out.Aggregate.ValidCount)
	assert.InDelta(t, (0.7-1.0+0.8)/3, out.Aggregate.AveragePolarity, 1e-9)
}

func TestPipelineRunFetchError(t *testing.T) {
	fetchErr := models.NewAnalysisError(models.KindNetworkFailure, "boom", nil)
	p := newTestPipeline(t, stubSource{err: fetchErr}, models.AveragingLegacy)

	_, err := p.Run(context.Background(), "https://example.com/dp/1")
	assert.ErrorIs(t, err, models.ErrNetworkFailure)
}

func TestPipelineRunAggregateUndefined(t *testing.T) {
	p := newTestPipeline(t, stubSource{html: reviewPage("Good blender")}, models.AveragingLegacy)

	out, err := p.Run(context.Background(), "https://example.com/dp/1")
	require.NoError(t, err)
	require.Len(t, out.Reviews, 1)
	assert.ErrorIs(t, out.AggregateErr, models.ErrAggregationUndefined)
}
