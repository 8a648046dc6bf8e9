package score

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dtnitsch/review-sentiment/internal/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func init() {
	color.NoColor = true
}

func runScore(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.App{
		Name:      "review-sentiment",
		Flags:     common.GlobalFlags(),
		Reader:    strings.NewReader(stdin),
		Writer:    &out,
		ErrWriter: &bytes.Buffer{},
		Commands: []*cli.Command{
			{Name: "score", Flags: Flags(), Action: ScoreAction},
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	base := []string{"review-sentiment", "--config", "", "score", "--no-language-detection"}
	err := app.RunContext(context.Background(), append(base, args...))
	return out.String(), err
}

func TestScoreActionArgs(t *testing.T) {
	out, err := runScore(t, "", "--averaging", "mean", "good", "terrible")
	require.NoError(t, err)

	assert.Contains(t, out, "Review #1: \n\tPolarity: 0.70; VERY POSITIVE\n")
	assert.Contains(t, out, "Review #2: \n\tPolarity: -1.00; VERY NEGATIVE\n")
	assert.Contains(t, out, "Average Polarity: -0.1500")
}

func TestScoreActionStdin(t *testing.T) {
	out, err := runScore(t, "good\n\n   \nthe box arrived\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Review #1: \n\tPolarity: 0.70")
	assert.Contains(t, out, "Review #2: not written in supported language. No analysis performed.")
	// One valid review has no legacy aggregate; that is not an error here.
	assert.NotContains(t, out, "PAGE TOTAL AGGREGATES")
}

func TestScoreActionNothingToScore(t *testing.T) {
	_, err := runScore(t, "\n\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to score")
}
