// Package help holds the quickstart text printed by the quickstart command.
package help

const QuickstartYAML = `# review-sentiment Quick Start

commands:
  analyze_prompted: |
    review-sentiment
    # asks for the product URL, then whether to save the scores

  analyze: |
    review-sentiment analyze --url "https://www.amazon.com/dp/B000000000" --no-export

  export_without_prompt: |
    review-sentiment analyze --url "https://www.amazon.com/dp/B000000000" --export --output scores.xlsx

  table_layout: |
    review-sentiment analyze --url "https://www.amazon.com/dp/B000000000" --format table

  cached_refetch: |
    review-sentiment analyze --url "https://www.amazon.com/dp/B000000000" --max-age 1h

  list_runs: |
    review-sentiment history --limit 10

  show_run: |
    review-sentiment show 5

  score_text: |
    review-sentiment score "Really good blender" "Not great"
    cat reviews.txt | review-sentiment score --format table

labels:
  polarity: "VERY POSITIVE >= 0.6 > Positive >= 0.2 > Neutral >= -0.2 > Negative >= -0.6 > VERY NEGATIVE"
  subjectivity: "HIGHLY SUBJECTIVE >= 0.8 > Somewhat Subjective >= 0.6 > Neutral >= 0.4 > Somewhat Objective >= 0.2 > VERY OBJECTIVE"

averaging:
  legacy: "polarity sum / valid, subjectivity sum / (valid - 1) (default)"
  mean: "both sums / valid"

config_file: |
  # config.yaml, read from the working directory when present
  averaging: legacy
  fetch:
    timeout: 30s
    max_age: 0s
    cache_dir: .cache/pages
  extract:
    keep_whitespace_lines: false   # true keeps blank lines as unscoreable reviews
  language:
    supported: [en]
    min_relative_distance: 0.25
  export:
    file_name: Example_Output.xlsx
    sheet_name: SHEET_TITLE
  history:
    path: ""   # empty means next to the binary

exit_codes:
  0: "success"
  1: "network failure, no reviews, undefined aggregate, export failure, bad input"
  2: "invalid config or history database unavailable"
`
