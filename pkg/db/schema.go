package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per analyze run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    title TEXT,
    averaging_mode TEXT NOT NULL,
    total_reviews INTEGER NOT NULL,
    unsupported_count INTEGER NOT NULL,
    valid_count INTEGER NOT NULL,

    -- NULL when the aggregate was undefined; aggregate_error says why
    average_polarity REAL,
    average_subjectivity REAL,
    aggregate_error TEXT,

    exported_to TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_url ON runs(url);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Per-review results, in extraction order
CREATE TABLE IF NOT EXISTS review_results (
    result_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    review_index INTEGER NOT NULL,
    text TEXT NOT NULL,
    kind TEXT NOT NULL,              -- scored, unsupported
    polarity REAL NOT NULL,
    subjectivity REAL NOT NULL,
    polarity_label TEXT,
    subjectivity_label TEXT,
    reason TEXT,                     -- language, no-sentiment
    language TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, review_index)
);

CREATE INDEX IF NOT EXISTS idx_results_run ON review_results(run_id);
`
